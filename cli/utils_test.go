package cli

import (
	"testing"

	"github.com/fatih/color"
	"go.viam.com/test"
)

func TestSamePath(t *testing.T) {
	equal, _ := samePath("/x", "/x")
	test.That(t, equal, test.ShouldBeTrue)
	equal, _ = samePath("/x", "x")
	test.That(t, equal, test.ShouldBeFalse)
	equal, _ = samePath("a/../b.json", "b.json")
	test.That(t, equal, test.ShouldBeTrue)
}

func TestPrintf(t *testing.T) {
	out := &testWriter{}
	printf(out, "writing to %s", "a.json")
	warningf(out, "swapped %d", 2)
	test.That(t, out.messages, test.ShouldHaveLength, 2)
	test.That(t, out.messages[0], test.ShouldEqual, "writing to a.json\n")
	test.That(t, out.messages[1], test.ShouldContainSubstring, "Warning:")
	test.That(t, out.messages[1], test.ShouldEndWith, " swapped 2\n")

	noColor := color.NoColor
	defer func() { color.NoColor = noColor }()
	color.NoColor = true
	test.That(t, color.New(color.Bold, color.FgYellow).Sprint("Warning:"), test.ShouldEqual, "Warning:")
}
