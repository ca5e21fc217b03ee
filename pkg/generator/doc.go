// Package generator renders templates and writes the results to disk as a
// single all-or-nothing step.
//
// # Features
//
//   - Template rendering (text/template) with case-conversion helpers
//   - File operations that validate before anything is written
//   - Dry runs that only describe what would change
//   - Transactions that restore overwritten files on failure
//
// # Transactions
//
// Use transactions to ensure all files are written atomically:
//
//	tx := generator.NewTransaction()
//	tx.Add(
//	    &generator.WriteFileOp{Path: "/work/app/src/routes/index.tsx", Content: routes, Mode: 0644},
//	    &generator.WriteFileOp{Path: "/work/app/src/App.tsx", Content: app, Mode: 0644},
//	)
//
//	if err := tx.Commit(ctx); err != nil {
//	    // Every file written so far was restored or removed
//	    return err
//	}
//
// Files that existed before the transaction get their previous content and
// mode back; files and directories the transaction created are removed.
package generator
