package wrap

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func testRequest(t *testing.T) (Request, *Ephemeral) {
	t.Helper()
	set, eph := testBuilder().Wrap(testOwner, testDest, 1_000_000_000, 2_039_280)
	return Request{
		Instructions:    set,
		FeePayer:        testOwner,
		RecentBlockhash: solana.Hash{},
	}, eph
}

func TestSignRequest(t *testing.T) {
	owner := solana.NewWallet()
	set, eph := testBuilder().Wrap(owner.PublicKey(), testDest, 1_000_000_000, 2_039_280)

	raw, err := SignRequest(Request{
		Instructions:    set,
		FeePayer:        owner.PublicKey(),
		RecentBlockhash: solana.Hash{},
	}, owner.PrivateKey, eph)
	if err != nil {
		t.Fatalf("SignRequest error: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("empty serialized transaction")
	}

	// Wire format opens with a compact array of signatures; exactly two are
	// required (fee payer and ephemeral account).
	if raw[0] != 2 {
		t.Errorf("signature count = %d, want 2", raw[0])
	}

	if !eph.Spent() {
		t.Error("ephemeral must be consumed by signing")
	}
}

func TestSignRequestMissingOwnerKey(t *testing.T) {
	req, eph := testRequest(t)

	_, err := SignRequest(req, nil, eph)
	if !errors.Is(err, ErrMissingSigner) {
		t.Errorf("error = %v, want ErrMissingSigner", err)
	}
	if eph.Spent() {
		t.Error("ephemeral must survive a rejected request")
	}
}

func TestSignRequestWrongOwnerKey(t *testing.T) {
	// The request's instructions require testOwner's signature, but only a
	// stranger's key is offered.
	req, eph := testRequest(t)
	stranger := solana.NewWallet()

	_, err := SignRequest(req, stranger.PrivateKey, eph)
	if !errors.Is(err, ErrMissingSigner) {
		t.Errorf("error = %v, want ErrMissingSigner", err)
	}
}

func TestSignRequestConsumesEphemeral(t *testing.T) {
	owner := solana.NewWallet()
	set, eph := testBuilder().Wrap(owner.PublicKey(), testDest, 1, 1)
	req := Request{Instructions: set, FeePayer: owner.PublicKey(), RecentBlockhash: solana.Hash{}}

	if _, err := SignRequest(req, owner.PrivateKey, eph); err != nil {
		t.Fatalf("first SignRequest error: %v", err)
	}
	if _, err := SignRequest(req, owner.PrivateKey, eph); !errors.Is(err, ErrEphemeralSpent) {
		t.Errorf("second use: error = %v, want ErrEphemeralSpent", err)
	}
}

func TestEphemeralTake(t *testing.T) {
	eph := NewEphemeral()
	pub := eph.PublicKey()

	key, err := eph.take()
	if err != nil {
		t.Fatalf("take error: %v", err)
	}
	if !key.PublicKey().Equals(pub) {
		t.Error("taken key does not match the advertised address")
	}

	if _, err := eph.take(); !errors.Is(err, ErrEphemeralSpent) {
		t.Errorf("second take: error = %v, want ErrEphemeralSpent", err)
	}

	// The address stays readable after the key is gone.
	if !eph.PublicKey().Equals(pub) {
		t.Error("PublicKey changed after take")
	}
}
