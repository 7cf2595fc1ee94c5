package qasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bellProgram = `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[2];
h q[0];
cx q[0], q[1];
measure q -> c;
`

func TestValidateBellProgram(t *testing.T) {
	report, err := Validate(bellProgram)
	require.NoError(t, err)

	assert.Equal(t, "2.0", report.Version)
	assert.Equal(t, 1, report.QubitRegisters)
	assert.Equal(t, 2, report.ClassicalBits)
	assert.Equal(t, 2, report.GateCount)
	assert.Equal(t, 1, report.MeasureCount)
	assert.False(t, report.FeedForward)
}

func TestValidateSkipsCommentsAndBlankLines(t *testing.T) {
	source := `// Bell pair preparation
OPENQASM 2.0;

// registers
qreg q[2];

h q[0];
`
	report, err := Validate(source)
	require.NoError(t, err)
	assert.Equal(t, 1, report.GateCount)
}

func TestValidateFeedForward(t *testing.T) {
	source := `OPENQASM 2.0;
qreg q[2];
creg c[2];
measure q[0] -> c[0];
if (c == 1) x q[1];
`
	report, err := Validate(source)
	require.NoError(t, err)
	assert.True(t, report.FeedForward)
}

func TestValidateMissingVersionHeader(t *testing.T) {
	_, err := Validate("qreg q[2];\nh q[0];\n")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateDuplicateVersionHeader(t *testing.T) {
	_, err := Validate("OPENQASM 2.0;\nOPENQASM 2.0;\nqreg q[1];\n")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateGateBeforeRegister(t *testing.T) {
	_, err := Validate("OPENQASM 2.0;\nh q[0];\nqreg q[1];\n")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateNoQubitRegisters(t *testing.T) {
	_, err := Validate("OPENQASM 2.0;\ninclude \"qelib1.inc\";\n")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateEmptyProgram(t *testing.T) {
	for _, source := range []string{"", "\n\n", "// only a comment\n"} {
		_, err := Validate(source)
		assert.ErrorIs(t, err, ErrInvalid, "source %q", source)
	}
}

func TestValidateMalformedRegisters(t *testing.T) {
	_, err := Validate("OPENQASM 2.0;\nqreg q;\n")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Validate("OPENQASM 2.0;\nqreg q[2];\ncreg c[];\n")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateBarriersAndIncludesNotCounted(t *testing.T) {
	source := `OPENQASM 2.0;
include "qelib1.inc";
qreg q[3];
barrier q;
h q[0];
`
	report, err := Validate(source)
	require.NoError(t, err)
	assert.Equal(t, 1, report.GateCount)
}

func TestValidateVersionThree(t *testing.T) {
	report, err := Validate("OPENQASM 3;\nqreg q[1];\nh q[0];\n")
	require.NoError(t, err)
	assert.Equal(t, "3", report.Version)
}
