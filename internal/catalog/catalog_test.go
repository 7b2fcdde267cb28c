package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Loads(t *testing.T) {
	c := Default()
	if got := len(c.Letters()); got != 24 {
		t.Errorf("letters = %d, want 24", got)
	}
	if len(c.Words()) == 0 {
		t.Fatal("expected default vocabulary")
	}
	groups := c.Groups()
	for i := 1; i < len(groups); i++ {
		if groups[i-1] >= groups[i] {
			t.Fatalf("groups not strictly ascending: %v", groups)
		}
	}
}

func TestLookup(t *testing.T) {
	c := Default()

	l, ok := c.Letter("α")
	if !ok || l.Name != "alpha" {
		t.Errorf("Letter(α) = %+v, %v", l, ok)
	}
	w, ok := c.Word("λόγος")
	if !ok || w.Pronunciation != "logos" {
		t.Errorf("Word(λόγος) = %+v, %v", w, ok)
	}
	if _, ok := c.Item(KindWord, "α"); ok {
		t.Error("letter key must not resolve as a word")
	}
	if it, ok := c.Item(KindLetter, "β"); !ok || it.Key() != "β" {
		t.Errorf("Item(letter, β) = %v, %v", it, ok)
	}
}

func TestBasicWords_AreFirstGroup(t *testing.T) {
	c := Default()
	basic := c.BasicWords()
	if len(basic) == 0 {
		t.Fatal("expected basic words")
	}
	for _, w := range basic {
		if w.Group != BasicGroup {
			t.Errorf("basic word %q in group %d", w.Greek, w.Group)
		}
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New(
		[]Letter{{Symbol: "α"}, {Symbol: "α"}},
		[]Word{{Greek: "καί", Group: 1}, {Greek: "καί", Group: 2}},
	)
	if err == nil {
		t.Fatal("expected error for duplicate keys")
	}
}

func TestNew_RejectsBadGroup(t *testing.T) {
	if _, err := New(nil, []Word{{Greek: "καί", Group: 0}}); err == nil {
		t.Fatal("expected error for group 0")
	}
}

func TestWordMeanings(t *testing.T) {
	w := Word{English: " Word / Speech //"}
	got := w.Meanings()
	want := []string{"word", "speech"}
	if len(got) != len(want) {
		t.Fatalf("Meanings() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Meanings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSameItem(t *testing.T) {
	a := Letter{Symbol: "ο", Name: "omicron"}
	b := Letter{Symbol: "ο", Name: "different content"}
	w := Word{Greek: "ο"}

	if !SameItem(a, b) {
		t.Error("items with the same kind and key should match")
	}
	if SameItem(a, w) {
		t.Error("a letter and a word never match")
	}
	if SameItem(a, nil) {
		t.Error("nil never matches")
	}
}

func TestDecode_SchemaViolation(t *testing.T) {
	_, err := Decode([]byte(`{"words": [{"greek": "καί", "english": "and", "pronunciation": "kai", "group": "one"}]}`))
	if err == nil {
		t.Fatal("expected schema error")
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := Default()
	raw, err := Encode(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(back.Words()) != len(c.Words()) || len(back.Letters()) != len(c.Letters()) {
		t.Error("round trip lost entries")
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat.json")
	doc := `{"letters": [{"letter": "α", "name": "alpha", "sound": "a"}],
	         "words": [{"greek": "καί", "english": "and", "pronunciation": "kai", "group": 2}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := c.Groups(); len(got) != 1 || got[0] != 2 {
		t.Errorf("Groups() = %v, want [2]", got)
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	if _, err := LoadFile("words.txt"); err == nil {
		t.Fatal("expected error")
	}
}
