package extract

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pinpipe/core"
)

func TestRegistry(t *testing.T) {
	f := &fakeFetcher{}
	r := NewRegistry(NewGoogle(f, ""), NewApple(f, ""))

	e, err := r.For(core.ServiceApple)
	require.NoError(t, err)
	assert.Equal(t, core.ServiceApple, e.Service())

	_, err = r.For(core.ServiceAllTrails)
	require.Error(t, err)
	assert.True(t, eris.Is(err, core.ErrUnrecognizedURL))
}
