package scenes

import "testing"

func TestRegistryBuildsEveryScene(t *testing.T) {
	params := Params{AspectRatio: 16.0 / 9.0, CameraAngleDeg: 10}

	for _, b := range Registry() {
		w, cam, err := b.Build(params)
		if err != nil {
			t.Errorf("Scene %q failed to build: %v", b.Name, err)
			continue
		}
		if w == nil || len(w.Shapes()) == 0 {
			t.Errorf("Scene %q built an empty world", b.Name)
			continue
		}
		if cam == nil {
			t.Errorf("Scene %q built no camera", b.Name)
		}
	}
}

func TestRegistryNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range Registry() {
		if seen[b.Name] {
			t.Errorf("Duplicate scene name %q", b.Name)
		}
		seen[b.Name] = true
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("demo"); !ok {
		t.Errorf("Lookup(demo) failed")
	}
	if _, ok := Lookup("no-such-scene"); ok {
		t.Errorf("Lookup(no-such-scene) unexpectedly succeeded")
	}
}

func TestScenesEncloseTheCamera(t *testing.T) {
	// Every shipped scene is closed: a ray fired from the camera in any
	// screen direction must hit something, so renders have no holes.
	params := Params{AspectRatio: 1}

	for _, b := range Registry() {
		w, cam, err := b.Build(params)
		if err != nil {
			t.Fatalf("Scene %q failed to build: %v", b.Name, err)
		}

		for _, uv := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}} {
			r := cam.FireRay(uv[0], uv[1])
			if _, ok := w.Intersect(r); !ok {
				t.Errorf("Scene %q: ray fired at (%v, %v) escapes the scene", b.Name, uv[0], uv[1])
			}
		}
	}
}
