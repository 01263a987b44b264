package registry

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const yamlDoc = `models:
  - type: HuggingFaceCausalLM
    abbr: a-yaml
    path: org/a
    tokenizer_path: org/a
    tokenizer_kwargs: {padding_side: left, truncation_side: left, use_fast: false}
    max_out_len: 100
    max_seq_len: 2048
    batch_size: 8
    meta_template:
      round:
        - {role: HUMAN, begin: "<u>", end: "\n"}
        - {role: BOT, begin: "<b>", end: "\n", generate: true}
    model_kwargs: {trust_remote_code: true, device_map: auto}
    run_cfg: {num_gpus: 1, num_procs: 1}
`

const jsonDoc = `{"models":[{"type":"HuggingFace","abbr":"b-json","path":"org/b","tokenizer_path":"org/b",
"tokenizer_kwargs":{"padding_side":"left","truncation_side":"right","use_fast":true},
"max_out_len":50,"max_seq_len":1024,"batch_size":4,
"meta_template":{"round":[{"role":"HUMAN","begin":"Q:","end":"\n"},{"role":"BOT","begin":"A:","end":"\n","generate":true}]},
"model_kwargs":{"trust_remote_code":false,"device_map":"cuda:0"},"run_cfg":{"num_gpus":1,"num_procs":1}}]}`

const tomlDoc = `[[models]]
type = "HuggingFaceCausalLM"
abbr = "c-toml"
path = "org/c"
tokenizer_path = "org/c"
max_out_len = 64
max_seq_len = 512
batch_size = 2

[models.tokenizer_kwargs]
padding_side = "left"
truncation_side = "left"
use_fast = false

[[models.meta_template.round]]
role = "HUMAN"
begin = "<u>"
end = "\n"

[[models.meta_template.round]]
role = "BOT"
begin = "<b>"
end = "\n"
generate = true

[models.model_kwargs]
trust_remote_code = true
device_map = "auto"

[models.run_cfg]
num_gpus = 0
num_procs = 1
`

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadFile_AllFormats(t *testing.T) {
	d := t.TempDir()
	cases := []struct{ name, content, abbr string }{
		{"m.yaml", yamlDoc, "a-yaml"},
		{"m.json", jsonDoc, "b-json"},
		{"m.toml", tomlDoc, "c-toml"},
	}
	for _, tc := range cases {
		p := writeTempFile(t, d, tc.name, tc.content)
		ms, err := LoadFile(p, Options{Strict: true})
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(ms) != 1 || ms[0].Abbr != tc.abbr {
			t.Fatalf("%s: unexpected %+v", tc.name, ms)
		}
		if len(ms[0].MetaTemplate.Round) != 2 || !ms[0].MetaTemplate.Round[1].Generate {
			t.Fatalf("%s: meta template %+v", tc.name, ms[0].MetaTemplate)
		}
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile("", Options{}); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "m.txt", "not supported")
	if _, err := LoadFile(p, Options{}); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := LoadFile(filepath.Join(d, "missing.yaml"), Options{}); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestLoadFile_StrictRejectsUnknownKeys(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "m.yaml", strings.Replace(yamlDoc, "batch_size: 8", "batch_size: 8\n    bogus: 1", 1))
	if _, err := LoadFile(p, Options{}); err != nil {
		t.Fatalf("lenient load failed: %v", err)
	}
	if _, err := LoadFile(p, Options{Strict: true}); err == nil {
		t.Fatalf("expected strict load to reject unknown key")
	}
}

func TestLoadFile_StrictValidates(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "m.yaml", strings.Replace(yamlDoc, "batch_size: 8", "batch_size: 0", 1))
	_, err := LoadFile(p, Options{Strict: true})
	if err == nil || !strings.Contains(err.Error(), "batch_size") {
		t.Fatalf("expected batch_size error, got %v", err)
	}
}

func TestLoadDir_ConcatenatesInNameOrder(t *testing.T) {
	d := t.TempDir()
	writeTempFile(t, d, "2.json", jsonDoc)
	writeTempFile(t, d, "1.yaml", yamlDoc)
	writeTempFile(t, d, "3.toml", tomlDoc)
	writeTempFile(t, d, "README.md", "ignored")
	ms, err := LoadDir(d, Options{Strict: true})
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(ms) != 3 || ms[0].Abbr != "a-yaml" || ms[1].Abbr != "b-json" || ms[2].Abbr != "c-toml" {
		t.Fatalf("unexpected: %+v", ms)
	}
}

func TestLoadDir_ExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir on this platform: %v", err)
	}
	hTmp, err := os.MkdirTemp(home, "evalmodels-registry-*")
	if err != nil {
		t.Skipf("cannot create temp under home: %v", err)
	}
	defer os.RemoveAll(hTmp)
	writeTempFile(t, hTmp, "x.yaml", yamlDoc)
	var tildePath string
	if runtime.GOOS == "windows" {
		tildePath = filepath.Join("~", filepath.Base(hTmp))
	} else {
		tildePath = "~/" + filepath.Base(hTmp)
	}
	ms, err := LoadDir(tildePath, Options{})
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(ms) != 1 || ms[0].Abbr != "a-yaml" {
		t.Fatalf("unexpected models: %+v", ms)
	}
}

func TestWriteFile_ReadBack(t *testing.T) {
	d := t.TempDir()
	src, err := LoadFile(writeTempFile(t, d, "in.yaml", yamlDoc), Options{Strict: true})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, name := range []string{"out.yaml", "out.json", "out.toml"} {
		p := filepath.Join(d, name)
		if err := WriteFile(p, src); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		got, err := LoadFile(p, Options{Strict: true})
		if err != nil {
			t.Fatalf("reload %s: %v", name, err)
		}
		if len(got) != 1 || got[0].MetaTemplate.Round[0].End != "\n" || got[0].Abbr != "a-yaml" {
			t.Fatalf("%s: unexpected %+v", name, got)
		}
	}
	if err := WriteFile(filepath.Join(d, "out.ini"), src); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}
