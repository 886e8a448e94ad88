package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFullNames(t *testing.T) {
	l := NewLookup(nil)

	code, ok := l.Resolve("Spain")
	require.True(t, ok)
	assert.Equal(t, "ES", code)

	code, ok = l.Resolve("  germany  ")
	require.True(t, ok)
	assert.Equal(t, "DE", code)

	code, ok = l.Resolve("The Netherlands")
	require.True(t, ok)
	assert.Equal(t, "NL", code)
}

func TestResolveUnknown(t *testing.T) {
	l := NewLookup(nil)

	_, ok := l.Resolve("Atlantis")
	assert.False(t, ok)

	_, ok = l.Resolve("")
	assert.False(t, ok)
}

func TestResolveExtraAliases(t *testing.T) {
	l := NewLookup(map[string]string{"deutschland": "de"})

	code, ok := l.Resolve("Deutschland")
	require.True(t, ok)
	assert.Equal(t, "DE", code)
}

func TestScanListCommaAndSeparated(t *testing.T) {
	l := NewLookup(nil)

	codes := l.ScanList("Germany, France, and Spain")
	assert.Equal(t, []string{"DE", "FR", "ES"}, codes)
}

func TestScanListDropsUnresolvableTokens(t *testing.T) {
	l := NewLookup(nil)

	codes := l.ScanList("Poland, Narnia and Lithuania")
	assert.Equal(t, []string{"PL", "LT"}, codes)
}

func TestScanListInsideSentence(t *testing.T) {
	l := NewLookup(nil)

	codes := l.ScanList("participants from Germany and young people from Italy")
	assert.Equal(t, []string{"DE", "IT"}, codes)
}

func TestScanListCollapsesDuplicates(t *testing.T) {
	l := NewLookup(nil)

	codes := l.ScanList("Spain, Spain and spanish")
	assert.Equal(t, []string{"ES"}, codes)
}

func TestIsEU(t *testing.T) {
	assert.True(t, IsEU("DE"))
	assert.True(t, IsEU("ES"))
	assert.False(t, IsEU("RS"))
	assert.False(t, IsEU("GB"))
}

func TestName(t *testing.T) {
	assert.Equal(t, "Czech Republic", Name("CZ"))
	assert.Equal(t, "XX", Name("XX"))
}
