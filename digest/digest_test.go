package digest

import (
	"errors"
	"math"
	"testing"

	"dynvar/types"
)

func sample() types.Value {
	return types.NewObject(map[string]types.Value{
		"b": types.NewArray(types.NewInt(1), types.NewReal(2.5)),
		"a": types.NewUint(1),
		"u": types.NewUndefined(),
	})
}

func TestSum(t *testing.T) {
	// canonical text: {"a":1,"b":[1,2.5]}
	tests := []struct {
		algo string
		want string
	}{
		{"md5", "D1A4DAF3304B713E7300F4739021893B"},
		{"sha1", "9EB0FA6B93FA4800E5F2AB4B3B57B5A123ED10D1"},
		{"sha224", "9DE29E252CF056F63E5B4E71575DF52506E560ABCC62E25516389174"},
		{"sha256", "07AC8340CB8A1F1A4C2CC05B1F6E885B0D7239278FDF513DB654864FCB9EC9E3"},
		{"", "07AC8340CB8A1F1A4C2CC05B1F6E885B0D7239278FDF513DB654864FCB9EC9E3"},
		{"SHA256", "07AC8340CB8A1F1A4C2CC05B1F6E885B0D7239278FDF513DB654864FCB9EC9E3"},
		{"sha384", "027093B25A1E770D1063AE7EB40ECDBEBE87FFC50C7AB2981AC8E057C5EE167611A34A09DD650D5FA6B3009D4618C519"},
		{"sha512", "145D3600B88C43450F2E4A9226F940E5A712B3C593BB39B892C5DEB283BC955FFB7964EB52EFEEA467EB970BD97455E31A8A3EE356214A449FC173153ABF3FA5"},
		{"ripemd160", "B6F1796F8A20D01854BC077FD6B3E4F7494E6EFE"},
	}
	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			got, err := Sum(sample(), tt.algo)
			if err != nil {
				t.Fatalf("Sum: %v", err)
			}
			if got != tt.want {
				t.Errorf("Sum(%q) = %s, want %s", tt.algo, got, tt.want)
			}
		})
	}
}

func TestSumCanonical(t *testing.T) {
	text, err := Canonical(sample())
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if text != `{"a":1,"b":[1,2.5]}` {
		t.Errorf("Canonical = %s", text)
	}

	// insertion order does not matter
	var built types.Value
	for _, k := range []string{"z", "m", "a"} {
		p, _ := built.Index(types.NewString(k))
		p.Set(types.NewString(k))
	}
	other := types.NewObject(map[string]types.Value{
		"a": types.NewString("a"),
		"m": types.NewString("m"),
		"z": types.NewString("z"),
	})
	h1, _ := Sum(built, "")
	h2, _ := Sum(other, "")
	if h1 != h2 {
		t.Errorf("digests differ for equal objects: %s vs %s", h1, h2)
	}

	whole, _ := Sum(types.NewInt(3), "")
	asReal, _ := Sum(types.NewReal(3), "")
	if whole == asReal {
		t.Error("3 and 3.0 share a digest")
	}

	null, _ := Sum(types.NewFunc(nil), "sha256")
	if null != "74234E98AFE7498FB5DAF1F36AC2D78ACC339464F950703B8C019892F982B90B" {
		t.Errorf("top-level function digest = %s, want digest of null", null)
	}
}

func TestSumErrors(t *testing.T) {
	if _, err := Sum(sample(), "crc32"); !errors.Is(err, types.ErrRange) {
		t.Errorf("unknown algorithm error = %v, want ErrRange", err)
	}
	if _, err := HMAC(sample(), nil, "whirlpool"); !errors.Is(err, types.ErrRange) {
		t.Errorf("unknown HMAC algorithm error = %v, want ErrRange", err)
	}
	if _, err := Sum(types.NewReal(math.Inf(1)), ""); !errors.Is(err, types.ErrRange) {
		t.Errorf("infinite value error = %v, want ErrRange", err)
	}
}

func TestHMAC(t *testing.T) {
	got, err := HMAC(sample(), []byte("key"), "sha256")
	if err != nil {
		t.Fatalf("HMAC: %v", err)
	}
	if want := "312C91DFA28DF410E0DF8808DC767FF916BDFEAB1D837621B8A0B7A5B7BC700E"; got != want {
		t.Errorf("HMAC = %s, want %s", got, want)
	}
}

func TestAlgorithms(t *testing.T) {
	for _, algo := range Algorithms() {
		if _, err := Sum(types.NewNull(), algo); err != nil {
			t.Errorf("Sum with listed algorithm %q: %v", algo, err)
		}
	}
}
