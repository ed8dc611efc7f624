package sim

const (
	arenaBlockSize = 64
)

// entityArena stores entities in fixed-size blocks. Slots are reused after
// deletion and a slot's address never changes while it is occupied, so the
// grid can hand out *Entity without invalidating earlier pointers on growth.
type entityArena struct {
	blocks    []*[arenaBlockSize]Entity
	filled    []*[arenaBlockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

// Append stores the entity and returns its slot.
func (a *entityArena) Append(entity Entity) int {
	var index int
	if len(a.freeSlots) > 0 {
		index = a.freeSlots[len(a.freeSlots)-1]
		a.freeSlots = a.freeSlots[:len(a.freeSlots)-1]
	} else {
		index = a.nextIndex
		a.nextIndex++
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	if blockIdx >= len(a.blocks) {
		a.blocks = append(a.blocks, new([arenaBlockSize]Entity))
		a.filled = append(a.filled, new([arenaBlockSize]bool))
	}

	a.blocks[blockIdx][slotIdx] = entity
	a.filled[blockIdx][slotIdx] = true
	a.count++
	return index
}

// Get returns a pointer to the entity in the given slot, or nil if empty.
func (a *entityArena) Get(index int) *Entity {
	if !a.Has(index) {
		return nil
	}
	return &a.blocks[index/arenaBlockSize][index%arenaBlockSize]
}

// Has checks if a slot is occupied.
func (a *entityArena) Has(index int) bool {
	if index < 0 {
		return false
	}

	blockIdx := index / arenaBlockSize
	if blockIdx >= len(a.blocks) {
		return false
	}

	return a.filled[blockIdx][index%arenaBlockSize]
}

// Delete empties a slot and makes it available for reuse.
func (a *entityArena) Delete(index int) {
	if !a.Has(index) {
		return
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	a.filled[blockIdx][slotIdx] = false
	a.blocks[blockIdx][slotIdx] = Entity{} // drop behavior references
	a.freeSlots = append(a.freeSlots, index)
	a.count--
}

// Len returns the number of occupied slots.
func (a *entityArena) Len() int {
	return a.count
}
