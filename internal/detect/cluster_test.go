package detect

import (
	"image"
	"testing"
)

func TestIoU_NoOverlap(t *testing.T) {
	a := image.Rect(0, 0, 10, 10)
	b := image.Rect(20, 20, 30, 30)

	if got := IoU(a, b); got != 0 {
		t.Errorf("expected IoU 0 for disjoint boxes, got %f", got)
	}
}

func TestIoU_Identical(t *testing.T) {
	a := image.Rect(5, 5, 25, 25)

	if got := IoU(a, a); got != 1.0 {
		t.Errorf("expected IoU 1.0 for identical boxes, got %f", got)
	}
}

func TestIoU_PartialOverlap(t *testing.T) {
	// 10x10 boxes overlapping in a 5x10 strip: 50 / (100+100-50) = 1/3.
	a := image.Rect(0, 0, 10, 10)
	b := image.Rect(5, 0, 15, 10)

	got := IoU(a, b)
	want := 1.0 / 3.0
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected IoU %f, got %f", want, got)
	}
}

func TestIoU_Touching(t *testing.T) {
	a := image.Rect(0, 0, 10, 10)
	b := image.Rect(10, 0, 20, 10)

	if got := IoU(a, b); got != 0 {
		t.Errorf("edge-touching boxes share no area, got IoU %f", got)
	}
}

func TestCluster_MergesHeavyOverlap(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(0, 0, 100, 100),
		image.Rect(5, 5, 105, 105), // nearly the same face
		image.Rect(300, 300, 400, 400),
	}

	got := Cluster(rects, 0.5)
	if len(got) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(got))
	}
	// The distinct face survives untouched, in order.
	if got[1] != image.Rect(300, 300, 400, 400) {
		t.Errorf("unexpected second cluster: %v", got[1])
	}
}

func TestCluster_KeepsLargerBox(t *testing.T) {
	small := image.Rect(10, 10, 60, 60)
	large := image.Rect(0, 0, 70, 70)

	got := Cluster([]image.Rectangle{small, large}, 0.3)
	if len(got) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(got))
	}
	if got[0] != large {
		t.Errorf("expected the larger box to survive, got %v", got[0])
	}
}

func TestCluster_LightOverlapKeptApart(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(0, 0, 100, 100),
		image.Rect(90, 90, 190, 190), // corners barely touch
	}

	got := Cluster(rects, 0.2)
	if len(got) != 2 {
		t.Errorf("expected 2 boxes for light overlap, got %d", len(got))
	}
}

func TestCluster_PreservesOrder(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(200, 0, 260, 60),
		image.Rect(0, 0, 60, 60),
		image.Rect(100, 0, 160, 60),
	}

	got := Cluster(rects, 0.2)
	if len(got) != 3 {
		t.Fatalf("expected 3 boxes, got %d", len(got))
	}
	for i, r := range rects {
		if got[i] != r {
			t.Errorf("order not preserved at %d: %v", i, got[i])
		}
	}
}

func TestCluster_ZeroThresholdDisables(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(0, 0, 10, 10),
		image.Rect(0, 0, 10, 10),
	}
	if got := Cluster(rects, 0); len(got) != 2 {
		t.Errorf("threshold 0 should disable clustering, got %d boxes", len(got))
	}
}

func TestCluster_DoesNotMutateInput(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(0, 0, 40, 40),
		image.Rect(2, 2, 50, 50), // heavy overlap, larger than the first
	}
	original := make([]image.Rectangle, len(rects))
	copy(original, rects)

	got := Cluster(rects, 0.2)
	if len(got) != 1 || got[0] != image.Rect(2, 2, 50, 50) {
		t.Fatalf("expected the larger box to survive, got %v", got)
	}
	for i, r := range rects {
		if r != original[i] {
			t.Errorf("input slice mutated at %d: %v != %v", i, r, original[i])
		}
	}
}
