package version_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/uastkit/pkg/version"
)

func TestString(t *testing.T) {
	t.Parallel()

	line := version.String("uastkit")

	assert.True(t, strings.HasPrefix(line, "uastkit "+version.Version))
	assert.Contains(t, line, "commit: "+version.Commit)
	assert.Contains(t, line, "built: "+version.Date)
	assert.NotEmpty(t, version.Version)
}
