package state

import "testing"

func TestItemCount(t *testing.T) {
	t.Run("add and total", func(t *testing.T) {
		ic := ItemCount{}
		ic.Add("chocolate_frog", 2)
		ic.Add("quill", 1)

		if ic.Total() != 3 {
			t.Errorf("expected total 3, got %d", ic.Total())
		}
		if ic.Count("chocolate_frog") != 2 {
			t.Errorf("expected 2 chocolate frogs, got %d", ic.Count("chocolate_frog"))
		}
	})

	t.Run("remove deletes key at zero", func(t *testing.T) {
		ic := ItemCount{"quill": 1}
		removed := ic.Remove("quill", 1)

		if removed != 1 {
			t.Errorf("expected 1 removed, got %d", removed)
		}
		if _, ok := ic["quill"]; ok {
			t.Error("expected key to be deleted at zero count")
		}
	})

	t.Run("remove more than held removes what is there", func(t *testing.T) {
		ic := ItemCount{"quill": 2}
		removed := ic.Remove("quill", 5)

		if removed != 2 {
			t.Errorf("expected 2 removed, got %d", removed)
		}
		if ic.Total() != 0 {
			t.Errorf("expected empty inventory, got total %d", ic.Total())
		}
	})

	t.Run("remove of absent item is a no-op", func(t *testing.T) {
		ic := ItemCount{}
		if removed := ic.Remove("wand", 1); removed != 0 {
			t.Errorf("expected 0 removed, got %d", removed)
		}
	})

	t.Run("clone is independent", func(t *testing.T) {
		ic := ItemCount{"quill": 2}
		c := ic.Clone()
		c.Add("quill", 1)

		if ic.Count("quill") != 2 {
			t.Errorf("clone mutation leaked into original: %d", ic.Count("quill"))
		}
	})
}
