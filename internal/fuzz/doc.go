// Package fuzztests houses Go fuzz harnesses for the parse pipeline
// (source -> lexer -> tree builder -> query). They guard against panics,
// lost bytes and broken tree invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
