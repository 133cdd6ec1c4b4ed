package mitigation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/danmuck/minitoolchain/internal/contracts"
	"github.com/danmuck/minitoolchain/internal/diag"
	"github.com/danmuck/minitoolchain/internal/registry"
	"github.com/danmuck/minitoolchain/internal/testutil/testlog"
)

type identity struct{}

func (identity) Name() string { return "identity" }

func (identity) Apply(res contracts.Result, _ contracts.Config) (contracts.Result, error) {
	return contracts.NewResult(res.Counts, res.Meta, res.Raw), nil
}

func identityFactory(Deps) Mitigator { return identity{} }

func TestRegistryNoneSkips(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	m, ok, err := r.New(None, Deps{})
	if err != nil || ok || m != nil {
		t.Fatalf("expected none to skip: m=%v ok=%v err=%v", m, ok, err)
	}
}

func TestRegistryResolvesRegistered(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	if err := r.Register("identity", identityFactory); err != nil {
		t.Fatalf("register: %v", err)
	}
	m, ok, err := r.New("identity", Deps{})
	if err != nil || !ok || m.Name() != "identity" {
		t.Fatalf("resolve failed: m=%v ok=%v err=%v", m, ok, err)
	}
}

func TestRegistryUnknownListsAlternatives(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	_ = r.Register("identity", identityFactory)
	_, _, err := r.New("fancy", Deps{})
	if !errors.Is(err, ErrUnsupportedMitigation) {
		t.Fatalf("expected ErrUnsupportedMitigation, got %v", err)
	}
	if !strings.Contains(err.Error(), "--mitigation none|identity") {
		t.Fatalf("error should suggest alternatives: %v", err)
	}
}

func TestRegistryReservesNone(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	if err := r.Register(None, identityFactory); !errors.Is(err, registry.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"none"}) {
		t.Fatalf("unexpected names: %v", got)
	}
}

func TestDepsSinkOrDiscard(t *testing.T) {
	testlog.Start(t)
	if _, ok := (Deps{}).SinkOrDiscard().(diag.Discard); !ok {
		t.Fatalf("expected discard fallback")
	}
	c := diag.NewCollectorWithLogger(nil)
	if (Deps{Warnings: c}).SinkOrDiscard() != diag.Sink(c) {
		t.Fatalf("expected configured sink")
	}
}
