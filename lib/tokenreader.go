package lib

type tokenReader interface {
	Next() Token
	Peek() Token
	Back()
	Pos() int
	Seek(pos int)
}
