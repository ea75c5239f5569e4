package splitter

import (
	"strings"
	"testing"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		wantErr   bool
	}{
		{name: "valid", chunkSize: 100, overlap: 20, wantErr: false},
		{name: "zero overlap", chunkSize: 100, overlap: 0, wantErr: false},
		{name: "zero chunk size", chunkSize: 0, overlap: 0, wantErr: true},
		{name: "negative overlap", chunkSize: 100, overlap: -1, wantErr: true},
		{name: "overlap equals chunk size", chunkSize: 100, overlap: 100, wantErr: true},
		{name: "overlap exceeds chunk size", chunkSize: 100, overlap: 150, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.chunkSize, tt.overlap, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%d, %d) error = %v, wantErr %v", tt.chunkSize, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	s, err := NewProse(100, 20)
	if err != nil {
		t.Fatalf("NewProse() error: %v", err)
	}

	for _, input := range []string{"", "   ", "\n\n\t"} {
		if chunks := s.Split(input); chunks != nil {
			t.Errorf("Split(%q) = %v, want nil", input, chunks)
		}
	}
}

func TestSplit_ShortInput(t *testing.T) {
	s, err := NewProse(100, 20)
	if err != nil {
		t.Fatalf("NewProse() error: %v", err)
	}

	chunks := s.Split("  short text  ")
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "short text" {
		t.Errorf("Split() chunk = %q, want %q", chunks[0], "short text")
	}
}

func TestSplit_WordBoundaries(t *testing.T) {
	s, err := New(10, 3, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	chunks := s.Split("aaaa bbbb cccc dddd")
	want := []string{"aaaa bbbb ", "cccc dddd"}
	if len(chunks) != len(want) {
		t.Fatalf("Split() returned %d chunks %v, want %d", len(chunks), chunks, len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplit_Overlap(t *testing.T) {
	s, err := New(10, 5, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	chunks := s.Split("aaaa bbbb cccc dddd")
	want := []string{"aaaa bbbb ", "bbbb cccc ", "cccc dddd"}
	if len(chunks) != len(want) {
		t.Fatalf("Split() returned %d chunks %v, want %d", len(chunks), chunks, len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplit_ChunkSizeBound(t *testing.T) {
	s, err := NewProse(50, 10)
	if err != nil {
		t.Fatalf("NewProse() error: %v", err)
	}

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("The quick brown fox jumps over the lazy dog. ")
		if i%5 == 4 {
			b.WriteString("\n\n")
		}
	}

	chunks := s.Split(b.String())
	if len(chunks) < 2 {
		t.Fatalf("Split() returned %d chunks, want several", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if n := len([]rune(chunk)); n > 50 {
			t.Errorf("chunk %d has %d runes, exceeds chunk size 50: %q", i, n, chunk)
		}
	}
}

func TestSplit_ParagraphPriority(t *testing.T) {
	s, err := NewProse(30, 0)
	if err != nil {
		t.Fatalf("NewProse() error: %v", err)
	}

	chunks := s.Split("first paragraph here\n\nsecond paragraph here")
	if len(chunks) != 2 {
		t.Fatalf("Split() returned %d chunks %v, want 2", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[1], "second") {
		t.Errorf("chunk 1 = %q, want paragraph boundary before %q", chunks[1], "second")
	}
}

func TestSplit_NoSeparators(t *testing.T) {
	s, err := New(8, 0, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	chunks := s.Split("abcdefghijklmnopqrst")
	want := []string{"abcdefgh", "ijklmnop", "qrst"}
	if len(chunks) != len(want) {
		t.Fatalf("Split() returned %d chunks %v, want %d", len(chunks), chunks, len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplit_RuneLengths(t *testing.T) {
	s, err := New(4, 0, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// 8 multi-byte runes with no separators must split at rune level.
	chunks := s.Split("日本語テキスト分")
	if len(chunks) != 2 {
		t.Fatalf("Split() returned %d chunks %v, want 2", len(chunks), chunks)
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > 4 {
			t.Errorf("chunk %d has %d runes, exceeds chunk size 4", i, n)
		}
	}
}

func TestSplit_CoversInput(t *testing.T) {
	s, err := NewProse(20, 0)
	if err != nil {
		t.Fatalf("NewProse() error: %v", err)
	}

	input := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	chunks := s.Split(input)
	if strings.Join(chunks, "") != input {
		t.Errorf("chunks with zero overlap do not reconstruct the input:\n got %q\nwant %q", strings.Join(chunks, ""), input)
	}
}
