package access

import "testing"

func TestGeneratePIN(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		pin, err := GeneratePIN()
		if err != nil {
			t.Fatalf("GeneratePIN failed: %v", err)
		}
		if len(pin) != pinLength {
			t.Fatalf("pin %q has length %d, want %d", pin, len(pin), pinLength)
		}
		for _, c := range pin {
			if c < '0' || c > '9' {
				t.Fatalf("pin %q contains non-digit %q", pin, c)
			}
		}
		seen[pin] = true
	}
	if len(seen) < 2 {
		t.Fatal("20 generated pins were all identical")
	}
}

func TestHashAndVerifyPIN(t *testing.T) {
	hash, err := HashPIN("042619")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}
	if hash == "042619" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPIN(hash, "042619") {
		t.Fatal("correct pin rejected")
	}
	if VerifyPIN(hash, "042618") {
		t.Fatal("wrong pin accepted")
	}
}
