// Package fuzztests holds Go fuzz harnesses for the lime front-end
// (source -> lexer -> parser -> scope resolution). They guard against
// panics and hangs on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
