// Package catalog records corpus operation history in a small SQLite
// database so runs can be reviewed later with the history command.
package catalog
