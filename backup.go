package zcbor

// BackupFlags selects the actions [State.ProcessBackup] performs against the
// top of the backup stack. The three actions are independent and may be
// combined as a single bitmask rather than three separate boolean
// parameters.
type BackupFlags uint32

const (
	// FlagRestore overwrites the current cursor with the topmost backup.
	FlagRestore BackupFlags = 1 << iota
	// FlagConsume pops the topmost backup off the stack.
	FlagConsume
	// FlagTransferPayload, combined with FlagRestore, keeps the pre-restore
	// payload offset instead of the restored one. This is how container end
	// decoding both restores the outer elem_count/length and keeps the
	// cursor positioned after everything the container's body consumed.
	FlagTransferPayload
)

// NewBackup pushes the current cursor state onto the backup stack and sets
// elemCount to newElemCount. It fails with [ErrNoBackupMem] if the backup
// stack (sized via [NewState]'s maxBackups) is full.
func (s *State) NewBackup(newElemCount uint32) error {
	if s.backupTop >= len(s.backups) {
		return s.fail(KindNoBackupMem)
	}
	s.backups[s.backupTop] = snapshot{
		offset:                s.offset,
		end:                   s.end,
		elemCount:             s.elemCount,
		indefiniteLengthArray: s.indefiniteLengthArray,
	}
	s.backupTop++
	s.elemCount = newElemCount
	return nil
}

// ProcessBackup consults the topmost backup, applying flags, and checks that
// the current elem_count does not exceed maxElemCount. It fails with
// [ErrNoBackupActive] if the backup stack is empty, or [ErrHighElemCount] if
// the element count check fails.
//
// The usual combinations are: FlagRestore|FlagConsume|FlagTransferPayload at
// the end of a container (restore the outer scope, discard the backup, but
// keep the payload position the body advanced to); FlagRestore alone to
// abort a speculative attempt; FlagConsume alone to commit after success
// without touching the cursor.
func (s *State) ProcessBackup(flags BackupFlags, maxElemCount uint32) error {
	if s.backupTop == 0 {
		return s.fail(KindNoBackupActive)
	}
	payload := s.offset
	elemCount := s.elemCount

	top := s.backups[s.backupTop-1]
	if flags&FlagRestore != 0 {
		s.offset = top.offset
		s.end = top.end
		s.elemCount = top.elemCount
		s.indefiniteLengthArray = top.indefiniteLengthArray
	}
	if flags&FlagConsume != 0 {
		s.backupTop--
	}
	if elemCount > maxElemCount {
		return s.fail(KindHighElemCount)
	}
	if flags&FlagTransferPayload != 0 {
		s.offset = payload
	}
	return nil
}

// UnionStart begins a union decode/encode attempt by pushing a backup that
// preserves the current elem_count, so every alternative starts from the
// identical cursor position.
func (s *State) UnionStart() error {
	return s.NewBackup(s.elemCount)
}

// UnionElem restores the cursor to the union-start backup without consuming
// it, so the next alternative can be attempted from the same starting point.
// Call this before each alternative, including the first.
func (s *State) UnionElem() error {
	return s.ProcessBackup(FlagRestore, s.elemCount)
}

// UnionEnd consumes the union-start backup after an alternative has
// succeeded, without touching the cursor (which already reflects the
// successful alternative's consumption).
func (s *State) UnionEnd() error {
	return s.ProcessBackup(FlagConsume, s.elemCount)
}

// The encode-side backup stack mirrors the decode side exactly; canonical
// container encoding needs the same push-speculate-patch capability decode
// unions need.

// NewBackup pushes the current encode cursor and sets elemCount.
func (e *EncodeState) NewBackup(newElemCount uint32) error {
	return e.newBackup(newElemCount, 0, 0)
}

// newBackup is NewBackup plus the container-patch bookkeeping described on
// [snapshot]; used by container.go's canonical container encoding.
func (e *EncodeState) newBackup(newElemCount uint32, headStart, headReserved int) error {
	if e.backupTop >= len(e.backups) {
		return e.fail(KindNoBackupMem)
	}
	e.backups[e.backupTop] = snapshot{
		offset: e.offset, elemCount: e.elemCount,
		headStart: headStart, headReserved: headReserved,
	}
	e.backupTop++
	e.elemCount = newElemCount
	return nil
}

// peekBackup returns the topmost backup without popping it, for callers
// (container.go) that need to read container-patch bookkeeping before
// deciding how to call ProcessBackup.
func (e *EncodeState) peekBackup() (snapshot, error) {
	if e.backupTop == 0 {
		return snapshot{}, e.fail(KindNoBackupActive)
	}
	return e.backups[e.backupTop-1], nil
}

// ProcessBackup is the encode-side counterpart of [State.ProcessBackup].
func (e *EncodeState) ProcessBackup(flags BackupFlags, maxElemCount uint32) error {
	if e.backupTop == 0 {
		return e.fail(KindNoBackupActive)
	}
	offset := e.offset
	elemCount := e.elemCount

	top := e.backups[e.backupTop-1]
	if flags&FlagRestore != 0 {
		e.offset = top.offset
		e.elemCount = top.elemCount
	}
	if flags&FlagConsume != 0 {
		e.backupTop--
	}
	if elemCount > maxElemCount {
		return e.fail(KindHighElemCount)
	}
	if flags&FlagTransferPayload != 0 {
		e.offset = offset
	}
	return nil
}
