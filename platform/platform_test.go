package platform

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cloudkucooland/hdfd/config"
)

type recording struct {
	name string
	log  *[]string
}

func (r recording) Startup(config.Config) Control {
	*r.log = append(*r.log, "start "+r.name)
	return r
}

func (r recording) Background() {
	*r.log = append(*r.log, "bg "+r.name)
}

func (r recording) Shutdown() Control {
	*r.log = append(*r.log, "stop "+r.name)
	return r
}

func TestLifecycleOrder(t *testing.T) {
	Reset()
	defer Reset()

	var calls []string
	RegisterPlatform("EC", recording{"EC", &calls})
	RegisterPlatform("HTTP", recording{"HTTP", &calls})
	RegisterPlatform("EC", recording{"duplicate", &calls})

	StartupAllPlatforms(config.Default())
	Background()
	ShutdownAllPlatforms()

	want := []string{"start EC", "start HTTP", "bg EC", "bg HTTP", "stop HTTP", "stop EC"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}

	if _, ok := GetPlatform("HTTP"); !ok {
		t.Error("HTTP not registered")
	}
	if _, ok := GetPlatform("Kasa"); ok {
		t.Error("unknown platform found")
	}
}
