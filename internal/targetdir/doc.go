// Package targetdir decides where a new project may be written.
//
// A scaffold run targets parentDir/desiredName. When that path is absent or
// an empty directory it is used as-is. When it is occupied, the caller's
// Policy decides what happens:
//
//   - PolicyOverwrite removes the existing entry and recreates it empty
//   - PolicyRename picks the first free desiredName-1, desiredName-2, ...
//   - PolicySkip fails with *TargetExistsError
//   - PolicyPrompt asks the operator through a ConfirmationProvider
//
// On success the returned TargetPath exists and is empty.
//
// # Concurrency
//
// Resolution reads the live file system without locks. Callers running
// several resolutions at once must use distinct parentDir/desiredName pairs;
// two processes renaming the same name concurrently are only kept apart by
// os.Mkdir failing on the loser.
package targetdir
