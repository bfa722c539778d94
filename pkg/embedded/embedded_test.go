package embedded

import (
	"testing"
	"testing/fstest"
)

// newTestFS 构造一个同时包含 assets/ 与 data/ 的内存文件系统
func newTestFS() (fstest.MapFS, fstest.MapFS) {
	assets := fstest.MapFS{
		"assets/tilesets/water.png": &fstest.MapFile{Data: []byte("png")},
	}
	data := fstest.MapFS{
		"data/scenes/game.yaml": &fstest.MapFile{Data: []byte("key: Game\n")},
	}
	return assets, data
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Reset()
	defer Reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	assets, data := newTestFS()
	Init(assets, data)

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestNotInitialized 测试未初始化时的错误
func TestNotInitialized(t *testing.T) {
	Reset()

	if _, err := Open("assets/test.png"); err == nil || err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Open: unexpected error %v", err)
	}
	if _, err := ReadFile("data/test.yaml"); err == nil {
		t.Error("ReadFile should fail before Init()")
	}
	if Exists("assets/test.png") {
		t.Error("Exists should be false before Init()")
	}
}

// TestReadFile_PrefixRouting 测试按前缀路由到不同文件系统
func TestReadFile_PrefixRouting(t *testing.T) {
	assets, data := newTestFS()
	Init(assets, data)
	defer Reset()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"assets path", "assets/tilesets/water.png", "png", false},
		{"data path", "data/scenes/game.yaml", "key: Game\n", false},
		{"dot slash prefix", "./data/scenes/game.yaml", "key: Game\n", false},
		{"unknown prefix", "maps/farm.json", "", true},
		{"missing file", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %s", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%s) failed: %v", tt.path, err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%s) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExistsAndFSFor(t *testing.T) {
	assets, data := newTestFS()
	Init(assets, data)
	defer Reset()

	if !Exists("assets/tilesets/water.png") {
		t.Error("water.png should exist")
	}
	if Exists("assets/tilesets/lava.png") {
		t.Error("lava.png should not exist")
	}

	fsys, name, err := FSFor("./data/scenes/game.yaml")
	if err != nil {
		t.Fatalf("FSFor failed: %v", err)
	}
	if name != "data/scenes/game.yaml" {
		t.Errorf("Normalized name = %s", name)
	}
	if _, err := fsys.Open(name); err != nil {
		t.Errorf("Returned FS cannot open %s: %v", name, err)
	}
}
