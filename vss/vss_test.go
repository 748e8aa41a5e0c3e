package vss

import (
	"bytes"
	"testing"

	"github.com/chilldkg/chilldkg/curve"
)

func TestGenerateDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x11}, 32)

	v1, err := Generate(seed, 3)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := Generate(seed, 3)
	if err != nil {
		t.Fatal(err)
	}

	for i := uint32(0); i < 5; i++ {
		if !v1.SecshareFor(i).Equal(v2.SecshareFor(i)) {
			t.Errorf("secshare %d differs between two Generate calls with the same seed", i)
		}
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	if _, err := Generate(make([]byte, 31), 2); err == nil {
		t.Error("expected error for wrong-length seed")
	}
	if _, err := Generate(make([]byte, 32), 0); err == nil {
		t.Error("expected error for zero threshold")
	}
}

func TestCommitmentMatchesShares(t *testing.T) {
	v, err := Generate(bytes.Repeat([]byte{0x22}, 32), 3)
	if err != nil {
		t.Fatal(err)
	}
	commitment := v.Commit()

	if commitment.Len() != 3 {
		t.Fatalf("commitment length = %d, want 3", commitment.Len())
	}

	for i := uint32(0); i < 5; i++ {
		share := v.SecshareFor(i)
		if !VerifySecshare(share, commitment.Pubshare(i)) {
			t.Errorf("share %d failed verification against commitment", i)
		}
	}
}

func TestCommitmentToSecretIsConstantTerm(t *testing.T) {
	v, err := Generate(bytes.Repeat([]byte{0x33}, 32), 2)
	if err != nil {
		t.Fatal(err)
	}
	commitment := v.Commit()

	if !commitment.CommitmentToSecret().Equal(commitment.Points()[0]) {
		t.Error("CommitmentToSecret did not return the constant-term point")
	}
}

func TestCommitmentAddIsPointwise(t *testing.T) {
	v1, _ := Generate(bytes.Repeat([]byte{0x01}, 32), 2)
	v2, _ := Generate(bytes.Repeat([]byte{0x02}, 32), 2)

	sum, err := NewCommitment(make([]*curve.Point, 2)).Add(v1.Commit(), v2.Commit())
	if err != nil {
		t.Fatal(err)
	}

	for i := uint32(0); i < 3; i++ {
		expected := curve.ScalarBaseMult(curve.NewScalar().Add(v1.SecshareFor(i), v2.SecshareFor(i)))
		if !sum.Pubshare(i).Equal(expected) {
			t.Errorf("summed commitment's pubshare(%d) does not match sum of individual secshares", i)
		}
	}
}

func TestCommitmentAddRejectsLengthMismatch(t *testing.T) {
	v1, _ := Generate(bytes.Repeat([]byte{0x01}, 32), 2)
	v2, _ := Generate(bytes.Repeat([]byte{0x02}, 32), 3)

	if _, err := NewCommitment(nil).Add(v1.Commit(), v2.Commit()); err == nil {
		t.Error("expected error for mismatched commitment lengths")
	}
}

func TestCommitmentBytesRoundtrip(t *testing.T) {
	v, _ := Generate(bytes.Repeat([]byte{0x44}, 32), 4)
	commitment := v.Commit()

	b, err := commitment.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	restored, err := ParseCommitment(b, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint32(0); i < 4; i++ {
		if !restored.Pubshare(i).Equal(commitment.Pubshare(i)) {
			t.Errorf("pubshare %d differs after commitment bytes roundtrip", i)
		}
	}
}

func TestParseCommitmentRejectsWrongLength(t *testing.T) {
	if _, err := ParseCommitment(make([]byte, 32), 1); err == nil {
		t.Error("expected error for wrong-length commitment bytes")
	}
}
