package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand_Argv(t *testing.T) {
	c := Command{Name: "cmake", Args: []string{"-G", "Ninja", ".."}, Dir: "/b"}
	assert.Equal(t, []string{"cmake", "-G", "Ninja", ".."}, c.Argv())
	assert.Equal(t, "cmake -G Ninja ..", c.String())

	bare := Command{Name: "ninja"}
	assert.Equal(t, []string{"ninja"}, bare.Argv())
}

func TestResult_Success(t *testing.T) {
	assert.True(t, Result{}.Success())
	assert.False(t, Result{ExitStatus: 2}.Success())
	assert.False(t, Result{ExitStatus: -1}.Success())
}

func TestDecode(t *testing.T) {
	assert.Equal(t, "", Decode(nil))
	assert.Equal(t, "-- Configuring done\n", Decode([]byte("-- Configuring done\n")))
	assert.Equal(t, "héllo", Decode([]byte("héllo")))
	assert.Equal(t, "a�b", Decode([]byte{'a', 0xff, 'b'}))
}
