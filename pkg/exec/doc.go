// Package exec runs the external tools hatch depends on (node, npm, yarn,
// pnpm, create-vite, webpack-cli, the Angular CLI).
//
// It has three parts:
//
//  1. Executor runs a command with context support, an explicit working
//     directory, and an optional spinner.
//  2. GenericCommand is a fluent builder on top of Executor.
//  3. CommandRegistry lets domain packages register named CommandWrappers
//     (one per upstream generator) and execute them by name.
//
// # Basic Usage
//
//	executor := exec.NewExecutor(&exec.Options{Dir: "/work"})
//	err := executor.Run(ctx, "npm", "install")
//
// # Working Directory
//
// hatch never changes the process working directory. Every command gets its
// directory explicitly, either via Options.Dir or GenericCommand.WithDir:
//
//	err := exec.NewGenericCommand(executor, "npm").
//	    WithArgs("install").
//	    WithDir(targetPath).
//	    WithSpinner("Installing dependencies").
//	    Run(ctx)
//
// # Command Registry Pattern
//
// Generators implement CommandWrapper and receive the Executor at execution
// time, which keeps them trivially mockable in tests:
//
//	registry := exec.NewCommandRegistry()
//	registry.Register(createVite{...})
//	err := registry.Execute(ctx, "react-vite", executor)
package exec
