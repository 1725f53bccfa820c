package state

// Capacity limits for the player inventory and scene containers.
// Transfers that would exceed a cap are rejected, never clamped.
const (
	InventoryCap = 10
	ContainerCap = 15
)

// ItemCount is a bounded multiset of items. A zero count is never stored;
// removing the last unit deletes the key.
type ItemCount map[string]int

// Total returns the summed count across all items.
func (ic ItemCount) Total() int {
	total := 0
	for _, n := range ic {
		total += n
	}
	return total
}

// Count returns the count for one item.
func (ic ItemCount) Count(item string) int {
	return ic[item]
}

// Add increases the count for an item. Quantities below one are ignored.
// Capacity checks belong to the caller; Add itself never rejects.
func (ic ItemCount) Add(item string, qty int) {
	if qty < 1 {
		return
	}
	ic[item] += qty
}

// Remove decreases the count for an item, deleting the key when the count
// reaches zero. Returns the number of units actually removed.
func (ic ItemCount) Remove(item string, qty int) int {
	if qty < 1 {
		return 0
	}
	have, ok := ic[item]
	if !ok {
		return 0
	}
	if have > qty {
		ic[item] = have - qty
		return qty
	}
	delete(ic, item)
	return have
}

// Clone returns an independent copy.
func (ic ItemCount) Clone() ItemCount {
	if ic == nil {
		return nil
	}
	out := make(ItemCount, len(ic))
	for k, v := range ic {
		out[k] = v
	}
	return out
}

func cloneContainers(containers map[string]ItemCount) map[string]ItemCount {
	if containers == nil {
		return nil
	}
	out := make(map[string]ItemCount, len(containers))
	for id, items := range containers {
		out[id] = items.Clone()
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
