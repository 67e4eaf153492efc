package spectrometer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/san-kum/hydrogensim/internal/atom"
	"github.com/san-kum/hydrogensim/internal/rng"
)

func TestRecord(t *testing.T) {
	s := New()
	for _, wl := range []int{656, 122, 656, 486} {
		s.Record(wl)
	}

	if s.Total() != 4 {
		t.Errorf("expected total 4, got %d", s.Total())
	}
	if s.Count(656) != 2 {
		t.Errorf("expected 2 at 656nm, got %d", s.Count(656))
	}
	want := []int{122, 486, 656}
	got := s.Wavelengths()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}

	counts := s.Counts()
	counts[656] = 100
	if s.Count(656) != 2 {
		t.Error("Counts must return a copy")
	}

	s.Reset()
	if s.Total() != 0 || len(s.Wavelengths()) != 0 {
		t.Error("expected empty spectrometer after reset")
	}
}

func TestMerge(t *testing.T) {
	a, b := New(), New()
	a.Record(122)
	b.Record(122)
	b.Record(103)
	a.Merge(b)

	if a.Total() != 3 || a.Count(122) != 2 || a.Count(103) != 1 {
		t.Errorf("unexpected merge result %v", a.Counts())
	}
}

func TestFromCounts(t *testing.T) {
	s := FromCounts(map[int]int{656: 3, 486: 0, 122: 1})
	if s.Total() != 4 || len(s.Wavelengths()) != 2 {
		t.Errorf("unexpected histogram %v", s.Counts())
	}
}

func TestAttach(t *testing.T) {
	m := atom.NewBohr(atom.Deps{Rand: rng.Constant(0.3)})
	s := New()
	detach := s.Attach(m.Events())

	if err := m.SetN(3); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 150; i++ {
		m.Step(0.01)
	}
	if s.Total() == 0 {
		t.Fatal("expected the spontaneous emission to be recorded")
	}

	detach()
	recorded := s.Total()
	m.SetN(4)
	for i := 0; i < 150; i++ {
		m.Step(0.01)
	}
	if s.Total() != recorded {
		t.Errorf("expected no recording after detach, got %d", s.Total()-recorded)
	}
}

func TestWriteChart(t *testing.T) {
	s := New()
	if err := s.WriteChart(&bytes.Buffer{}, "empty"); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}

	s.Record(656)
	s.Record(486)
	s.Record(656)
	var buf bytes.Buffer
	if err := s.WriteChart(&buf, "Balmer"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}
}
