package sim

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeBuilder_Success(t *testing.T) {
	bin, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true(1) not available")
	}

	b := &MakeBuilder{Make: bin, Dir: t.TempDir(), Silent: true}
	assert.NoError(t, b.Build(context.Background()))
}

func TestMakeBuilder_Failure(t *testing.T) {
	bin, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false(1) not available")
	}

	b := &MakeBuilder{Make: bin, Dir: t.TempDir(), Silent: true}
	err = b.Build(context.Background())
	assert.ErrorIs(t, err, ErrBuildFailed)
}

func TestMakeBuilder_MissingMake(t *testing.T) {
	b := &MakeBuilder{Make: "/nonexistent/make", Dir: t.TempDir(), Silent: true}
	assert.ErrorIs(t, b.Build(context.Background()), ErrBuildFailed)
}

func TestBuilderFunc(t *testing.T) {
	boom := errors.New("boom")
	var b Builder = BuilderFunc(func(context.Context) error { return boom })
	assert.Equal(t, boom, b.Build(context.Background()))
}
