package alphabet

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase kept", "hello", "hello"},
		{"uppercase folded", "Hello World", "helloworld"},
		{"digits and punctuation dropped", "It's 1961, isn't it?", "itsisntit"},
		{"newlines dropped", "line one\nline two\r\n", "lineonelinetwo"},
		{"accents folded", "Café Noël", "cafenoel"},
		{"non latin dropped", "αβγ straße", "strae"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsLower(got))
		})
	}
}

func TestSeq_StopsEarly(t *testing.T) {
	var got []byte
	for c := range Seq("abcdef") {
		got = append(got, c)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, "abc", string(got))
}

func TestIndex(t *testing.T) {
	for i := 0; i < Size; i++ {
		assert.Equal(t, i, Index(FromIndex(i)))
	}
	assert.Equal(t, byte('z'), FromIndex(-1))
	assert.Equal(t, byte('a'), FromIndex(26))
}

func TestStream(t *testing.T) {
	s := NewStream(strings.NewReader("A-b\n3c"))
	var got []byte
	for {
		c, err := s.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, c)
	}
	assert.Equal(t, "abc", string(got))
}
