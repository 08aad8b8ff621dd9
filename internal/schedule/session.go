package schedule

// Session holds the client-side state for one open event: the event
// snapshot plus a monotonic edit counter per entity. Mutations are applied
// optimistically before the store round trip; when the response arrives it
// is reconciled only if no later local edit has bumped the counter, so a
// slow response can never clobber a newer edit. The event's block and task
// slices are always replaced wholesale, never mutated in place.
//
// Session is not safe for concurrent use; the TUI drives it from a single
// update loop.
type Session struct {
	event    *Event
	current  Person
	versions map[string]uint64
}

// NewSession wraps a freshly fetched event.
func NewSession(event *Event, current Person) *Session {
	return &Session{
		event:    event,
		current:  current,
		versions: make(map[string]uint64),
	}
}

// Event returns the current snapshot.
func (s *Session) Event() *Event {
	return s.event
}

// CurrentUser returns the signed-in person.
func (s *Session) CurrentUser() Person {
	return s.current
}

// Version returns the current edit counter for an entity id.
func (s *Session) Version(id string) uint64 {
	return s.versions[id]
}

// Stale reports whether a store response tagged with version v has been
// superseded by a later local edit and must be dropped.
func (s *Session) Stale(id string, v uint64) bool {
	return v < s.versions[id]
}

func (s *Session) bump(id string) uint64 {
	s.versions[id]++
	return s.versions[id]
}

// replaceEvent swaps in a shallow copy of the event with the given slices,
// keeping updates observably atomic.
func (s *Session) replaceEvent(blocks []CalendarBlock, tasks []Task) {
	next := *s.event
	next.CalendarBlocks = blocks
	next.Tasks = tasks
	s.event = &next
}

// AddBlock appends a block optimistically and returns its edit version.
func (s *Session) AddBlock(b CalendarBlock) uint64 {
	blocks := make([]CalendarBlock, 0, len(s.event.CalendarBlocks)+1)
	blocks = append(blocks, s.event.CalendarBlocks...)
	blocks = append(blocks, b)
	s.replaceEvent(blocks, s.event.Tasks)
	return s.bump(b.ID)
}

// PatchBlock applies a partial update optimistically. It returns the prior
// block state for rollback and the edit version, or ok=false when the
// block no longer exists.
func (s *Session) PatchBlock(id string, patch BlockPatch) (prev CalendarBlock, version uint64, ok bool) {
	blocks := make([]CalendarBlock, len(s.event.CalendarBlocks))
	copy(blocks, s.event.CalendarBlocks)
	for i := range blocks {
		if blocks[i].ID != id {
			continue
		}
		prev = blocks[i]
		if patch.Title != nil {
			blocks[i].Title = *patch.Title
		}
		if patch.Color != nil {
			blocks[i].Color = *patch.Color
		}
		if patch.Span != nil {
			blocks[i].Start = patch.Span.Start
			blocks[i].End = patch.Span.End
		}
		s.replaceEvent(blocks, s.event.Tasks)
		return prev, s.bump(id), true
	}
	return CalendarBlock{}, 0, false
}

// ReconcileBlock replaces the optimistic block with the store's version,
// unless a later local edit has already superseded it.
func (s *Session) ReconcileBlock(b CalendarBlock, version uint64) bool {
	if s.Stale(b.ID, version) {
		return false
	}
	blocks := make([]CalendarBlock, len(s.event.CalendarBlocks))
	copy(blocks, s.event.CalendarBlocks)
	for i := range blocks {
		if blocks[i].ID == b.ID {
			blocks[i] = b
			s.replaceEvent(blocks, s.event.Tasks)
			return true
		}
	}
	return false
}

// RevertBlock rolls an optimistic patch back after a store failure, unless
// a later local edit has already superseded it.
func (s *Session) RevertBlock(prev CalendarBlock, version uint64) bool {
	return s.ReconcileBlock(prev, version)
}

// RemoveBlock drops a block from the snapshot.
func (s *Session) RemoveBlock(id string) {
	blocks := make([]CalendarBlock, 0, len(s.event.CalendarBlocks))
	for _, b := range s.event.CalendarBlocks {
		if b.ID != id {
			blocks = append(blocks, b)
		}
	}
	s.replaceEvent(blocks, s.event.Tasks)
	s.bump(id)
}

// AddTask appends a task optimistically and returns its edit version.
func (s *Session) AddTask(t Task) uint64 {
	tasks := make([]Task, 0, len(s.event.Tasks)+1)
	tasks = append(tasks, s.event.Tasks...)
	tasks = append(tasks, t)
	s.replaceEvent(s.event.CalendarBlocks, tasks)
	return s.bump(t.ID)
}

// PatchTask applies a partial update optimistically, returning the prior
// state for rollback.
func (s *Session) PatchTask(id string, patch TaskPatch) (prev Task, version uint64, ok bool) {
	tasks := make([]Task, len(s.event.Tasks))
	copy(tasks, s.event.Tasks)
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		prev = tasks[i]
		if patch.Title != nil {
			tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			tasks[i].Description = *patch.Description
		}
		if patch.Span != nil {
			tasks[i].Start = patch.Span.Start
			tasks[i].End = patch.Span.End
		}
		s.replaceEvent(s.event.CalendarBlocks, tasks)
		return prev, s.bump(id), true
	}
	return Task{}, 0, false
}

// ReconcileTask replaces the optimistic task with the store's version,
// unless a later local edit has already superseded it.
func (s *Session) ReconcileTask(t Task, version uint64) bool {
	if s.Stale(t.ID, version) {
		return false
	}
	tasks := make([]Task, len(s.event.Tasks))
	copy(tasks, s.event.Tasks)
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			s.replaceEvent(s.event.CalendarBlocks, tasks)
			return true
		}
	}
	return false
}

// RevertTask rolls an optimistic patch back after a store failure, unless
// a later local edit has already superseded it.
func (s *Session) RevertTask(prev Task, version uint64) bool {
	return s.ReconcileTask(prev, version)
}

// RemoveTask drops a task from the snapshot.
func (s *Session) RemoveTask(id string) {
	tasks := make([]Task, 0, len(s.event.Tasks))
	for _, t := range s.event.Tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	s.replaceEvent(s.event.CalendarBlocks, tasks)
	s.bump(id)
}
