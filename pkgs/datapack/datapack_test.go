package datapack_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forgewright/smelter/pkgs/datapack"
)

func buildSamplePack() *datapack.DataPack {
	pack := datapack.NewDataPack("smelter")
	datapack.AddRuntimeLibrary(pack)
	main := pack.NewFunction("main")
	main.Line(`data modify storage smelter:env current_environment.evaluations.expr_0 set value {string: "hi"}`)
	return pack
}

func TestFingerprint_IsDeterministic(t *testing.T) {
	a := datapack.Fingerprint(buildSamplePack())
	b := datapack.Fingerprint(buildSamplePack())
	if a != b {
		t.Errorf("Fingerprint is not deterministic: %q vs %q", a, b)
	}
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	pack := buildSamplePack()
	before := datapack.Fingerprint(pack)
	pack.Lookup("main").Line("say changed")
	after := datapack.Fingerprint(pack)
	if before == after {
		t.Error("expected fingerprint to change after editing a function body")
	}
}

func TestWrite_ProducesExpectedLayout(t *testing.T) {
	pack := buildSamplePack()
	dir := t.TempDir()

	if err := datapack.Write(pack, dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	metaPath := filepath.Join(dir, "pack.mcmeta")
	meta, err := os.ReadFile(metaPath)
	if err != nil {
		t.Fatalf("reading pack.mcmeta: %v", err)
	}
	if !strings.Contains(string(meta), "pack_format") {
		t.Errorf("pack.mcmeta missing pack_format: %s", meta)
	}

	for _, name := range []string{"initialize", "resolve", "invoke", "pop_stack", "main"} {
		path := filepath.Join(dir, "data", "smelter", "function", name+".mcfunction")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected function file %s: %v", path, err)
		}
	}

	tagPath := filepath.Join(dir, "data", "minecraft", "tags", "function", "load.json")
	tag, err := os.ReadFile(tagPath)
	if err != nil {
		t.Fatalf("reading load.json: %v", err)
	}
	if !strings.Contains(string(tag), datapack.FnInitialize) {
		t.Errorf("load.json missing %s: %s", datapack.FnInitialize, tag)
	}
}
