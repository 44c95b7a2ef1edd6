package search

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/coregx/byteseek/matcher"
	"github.com/coregx/byteseek/syntax"
	"github.com/coregx/byteseek/window"
)

func compile(t *testing.T, expr string) matcher.SequenceMatcher {
	t.Helper()
	n, err := syntax.Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q): %v", expr, err)
	}
	m, err := matcher.CompileSequence(n)
	if err != nil {
		t.Fatalf("CompileSequence(%q): %v", expr, err)
	}
	return m
}

// naiveForwards and naiveBackwards define the expected results.
func naiveForwards(seq matcher.SequenceMatcher, buf []byte, from, to int) int {
	for p := max(from, 0); p <= to && p < len(buf); p++ {
		if seq.Matches(buf, p) {
			return p
		}
	}
	return -1
}

func naiveBackwards(seq matcher.SequenceMatcher, buf []byte, from, to int) int {
	for p := min(from, len(buf)-1); p >= max(to, 0); p-- {
		if seq.Matches(buf, p) {
			return p
		}
	}
	return -1
}

var searchExprs = []string{
	"'abc'",
	"61",
	"`AbC`",
	"[61-63] 62",
	"61 .{2} 63",
	"'GIF8' [37 39] 'a'",
	"^61 ^61",
	"&80",
}

var haystacks = []string{
	"",
	"abc",
	"xxabcxxABCxxabc",
	"aabbccabcbcab",
	"GIF89a..GIF87a..GIF88a",
	"\x80\x00\xffabcab\x7f",
	"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaabc",
}

func TestSequenceSearcher_AgainstNaive(t *testing.T) {
	for _, expr := range searchExprs {
		seq := compile(t, expr)
		s := NewSequenceSearcher(seq)
		for _, hay := range haystacks {
			buf := []byte(hay)
			for from := -1; from <= len(buf); from++ {
				for to := from; to <= len(buf)+1; to++ {
					if got, want := s.SearchForwards(buf, from, to), naiveForwards(seq, buf, from, to); got != want {
						t.Errorf("%s in %q: SearchForwards(%d, %d) = %d, want %d", expr, hay, from, to, got, want)
					}
					if got, want := s.SearchBackwards(buf, to, from), naiveBackwards(seq, buf, to, from); got != want {
						t.Errorf("%s in %q: SearchBackwards(%d, %d) = %d, want %d", expr, hay, to, from, got, want)
					}
				}
			}
		}
	}
}

func TestSequenceSearcher_Reader(t *testing.T) {
	for _, expr := range searchExprs {
		seq := compile(t, expr)
		s := NewSequenceSearcher(seq)
		for _, hay := range haystacks {
			buf := []byte(hay)
			for size := 1; size <= len(buf)+1; size++ {
				r, err := window.NewByteReader(buf, size)
				if err != nil {
					t.Fatal(err)
				}
				name := fmt.Sprintf("%s in %q/window=%d", expr, hay, size)
				for from := 0; from <= len(buf); from++ {
					to := int64(len(buf) + 5)
					got, err := s.SearchForwardsReader(r, int64(from), to)
					if err != nil {
						t.Fatalf("%s: %v", name, err)
					}
					if want := naiveForwards(seq, buf, from, len(buf)); got != int64(want) {
						t.Errorf("%s: SearchForwardsReader(%d) = %d, want %d", name, from, got, want)
					}
					got, err = s.SearchBackwardsReader(r, int64(from), 0)
					if err != nil {
						t.Fatalf("%s: %v", name, err)
					}
					if want := naiveBackwards(seq, buf, from, 0); got != int64(want) {
						t.Errorf("%s: SearchBackwardsReader(%d) = %d, want %d", name, from, got, want)
					}
				}
			}
		}
	}
}

func TestSequenceSearcher_ReaderBoundedRange(t *testing.T) {
	seq := compile(t, "'abc'")
	s := NewSequenceSearcher(seq)
	r, _ := window.NewByteReader([]byte("..abc..abc"), 3)
	got, err := s.SearchForwardsReader(r, 3, 6)
	if err != nil || got != -1 {
		t.Errorf("SearchForwardsReader(3, 6) = (%d, %v), want -1", got, err)
	}
	got, _ = s.SearchForwardsReader(r, 3, 7)
	if got != 7 {
		t.Errorf("SearchForwardsReader(3, 7) = %d, want 7", got)
	}
}

func TestSequenceSearcher_Anchor(t *testing.T) {
	// The rarest position is the 'Q', not the wide set before it.
	s := NewSequenceSearcher(compile(t, "[61-7a] 'Q'"))
	if s.literal != nil {
		t.Fatal("set sequence should not be treated as a literal")
	}
	if s.anchor != 1 || !s.anchorOne || s.anchorByte != 'Q' {
		t.Errorf("anchor = (%d, %t, %q), want (1, true, 'Q')", s.anchor, s.anchorOne, s.anchorByte)
	}
	lit := NewSequenceSearcher(compile(t, "61 62"))
	if !bytes.Equal(lit.literal, []byte("ab")) {
		t.Errorf("literal = %q, want ab", lit.literal)
	}
}

func literals(t *testing.T, words ...string) []matcher.SequenceMatcher {
	t.Helper()
	out := make([]matcher.SequenceMatcher, len(words))
	for i, w := range words {
		m, err := matcher.NewByteSequenceString(w)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = m
	}
	return out
}

func naiveMulti(seqs []matcher.SequenceMatcher, buf []byte, from, to int) (int, int) {
	for p := max(from, 0); p <= to && p < len(buf); p++ {
		n := 0
		for _, s := range seqs {
			if s.Matches(buf, p) {
				n++
			}
		}
		if n > 0 {
			return p, n
		}
	}
	return -1, 0
}

func TestMultiSequenceSearcher(t *testing.T) {
	sets := []struct {
		name      string
		seqs      []matcher.SequenceMatcher
		prefilter bool
	}{
		{"literals", literals(t, "he", "she", "his", "hers", "abcd", "bc"), true},
		{"mixed", append(literals(t, "he", "she"), compile(t, "[61-63] 'x'"), compile(t, "`hi`")), false},
	}
	hays := []string{"ushers", "this is his", "xxabcdxx", "axbxcx", "HIhi", "", "bcd abcd"}
	for _, set := range sets {
		t.Run(set.name, func(t *testing.T) {
			m, err := NewMultiSequenceSearcher(set.seqs...)
			if err != nil {
				t.Fatal(err)
			}
			if m.HasPrefilter() != set.prefilter {
				t.Errorf("HasPrefilter() = %v, want %v", m.HasPrefilter(), set.prefilter)
			}
			for _, hay := range hays {
				buf := []byte(hay)
				for from := 0; from <= len(buf); from++ {
					wantPos, wantN := naiveMulti(set.seqs, buf, from, len(buf))
					res, ok := m.SearchForwards(buf, from, len(buf))
					if ok != (wantPos >= 0) || (ok && (res.Position != int64(wantPos) || len(res.Sequences) != wantN)) {
						t.Errorf("%q from %d: got (%+v, %v), want pos %d with %d sequences", hay, from, res, ok, wantPos, wantN)
					}
					for size := 1; size <= 4; size++ {
						r, _ := window.NewByteReader(buf, size)
						rres, rok, err := m.SearchForwardsReader(r, int64(from), int64(len(buf)))
						if err != nil {
							t.Fatal(err)
						}
						if rok != ok || rres.Position != res.Position || len(rres.Sequences) != len(res.Sequences) {
							t.Errorf("%q from %d window %d: reader got (%+v, %v), want (%+v, %v)", hay, from, size, rres, rok, res, ok)
						}
					}
				}
			}
		})
	}
}

func TestMultiSequenceSearcher_PrefilterOverlap(t *testing.T) {
	// "bc" ends before "abcd" does but starts later; the earlier start must win.
	m, err := NewMultiSequenceSearcher(literals(t, "abcd", "bc")...)
	if err != nil {
		t.Fatal(err)
	}
	res, ok := m.SearchForwards([]byte("xabcd"), 0, 4)
	if !ok || res.Position != 1 {
		t.Errorf("SearchForwards = (%+v, %v), want position 1", res, ok)
	}
}

func TestMultiSequenceSearcher_BackwardsAndFindAll(t *testing.T) {
	seqs := literals(t, "he", "hers")
	m, err := NewMultiSequenceSearcher(seqs...)
	if err != nil {
		t.Fatal(err)
	}
	buf := []byte("he said hers")
	res, ok := m.SearchBackwards(buf, len(buf), 0)
	if !ok || res.Position != 8 || len(res.Sequences) != 2 {
		t.Errorf("SearchBackwards = (%+v, %v), want position 8 with 2 sequences", res, ok)
	}
	all := m.FindAll(buf)
	if len(all) != 2 || all[0].Position != 0 || all[1].Position != 8 {
		t.Errorf("FindAll = %+v", all)
	}
	if _, err := NewMultiSequenceSearcher(); err != ErrNoSequences {
		t.Errorf("empty searcher error = %v, want ErrNoSequences", err)
	}
}
