package checksum

import "testing"

func TestSum(t *testing.T) {
	// sha256 of the empty string.
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != empty {
		t.Errorf("Sum(nil) = %s", got)
	}
	if Sum([]byte("a")) == Sum([]byte("b")) {
		t.Error("different inputs share a digest")
	}
}

func TestMatches(t *testing.T) {
	data := []byte("contact")
	if !Matches(data, Sum(data)) {
		t.Error("expected match")
	}
	if Matches(data, Sum([]byte("other"))) {
		t.Error("unexpected match")
	}
	if Matches(data, "") {
		t.Error("empty sum must never match")
	}
}
