// Package project runs a complete scaffold: it resolves the target
// directory, runs the framework's upstream generator, writes hatch's
// templates into the result and installs the packages they need.
//
// Every step receives the resolved absolute path explicitly. The process
// working directory is never changed.
package project
