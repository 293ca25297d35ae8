package nlp

type Token struct {
	Term         string
	Start        int
	End          int
	Position     uint32
	Type         string
	PartOfSpeech string
	BaseForm     string
	Reading      string
	Keyword      bool
}

// TokenStream is pulled by consumers until Next returns false. Once exhausted it stays exhausted.
type TokenStream interface {
	Next() (*Token, bool)
}

type sliceStream struct {
	tokens []*Token
	cursor int
}

func NewSliceStream(tokens []*Token) TokenStream {
	return &sliceStream{tokens: tokens}
}

func (s *sliceStream) Next() (*Token, bool) {
	if s.cursor >= len(s.tokens) {
		return nil, false
	}
	token := s.tokens[s.cursor]
	s.cursor++
	return token, true
}

// Collect drains the stream.
func Collect(stream TokenStream) []*Token {
	var result []*Token
	for {
		token, ok := stream.Next()
		if !ok {
			return result
		}
		result = append(result, token)
	}
}

// FilterFunc wraps a per-token transform as a stream. Returning false drops the token.
func FilterFunc(input TokenStream, fn func(token *Token) bool) TokenStream {
	return &funcStream{input: input, fn: fn}
}

type funcStream struct {
	input TokenStream
	fn    func(token *Token) bool
}

func (f *funcStream) Next() (*Token, bool) {
	for {
		token, ok := f.input.Next()
		if !ok {
			return nil, false
		}
		if f.fn(token) {
			return token, true
		}
	}
}

type emptyStream struct{}

func (emptyStream) Next() (*Token, bool) {
	return nil, false
}

// EmptyTokenStream returns a stream that consumes nothing and emits nothing.
func EmptyTokenStream() TokenStream {
	return emptyStream{}
}

type EmptyTokenizer struct{}

func (EmptyTokenizer) Tokenize(text string) TokenStream {
	return emptyStream{}
}
