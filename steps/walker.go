package steps

// FirstStep resolves the step named by the docmap's first-step value.
func (d *Docmap) FirstStep() (*Step, error) {
	if d == nil || d.FirstStepID == "" {
		return nil, &MissingStepError{}
	}
	step, ok := d.Steps[d.FirstStepID]
	if !ok || step == nil {
		return nil, &MissingStepError{ID: d.FirstStepID}
	}
	return step, nil
}

// NextStep resolves the successor of step, or nil when step names none.
// A next-step id that does not resolve within the docmap is an error: a
// chain naming a successor it does not contain is malformed, and treating
// it as termination would silently truncate traversal.
func (d *Docmap) NextStep(step *Step) (*Step, error) {
	if d == nil || step == nil || step.NextStepID == "" {
		return nil, nil
	}
	next, ok := d.Steps[step.NextStepID]
	if !ok || next == nil {
		return nil, &MissingStepError{ID: step.NextStepID}
	}
	return next, nil
}

// Walker traverses the step chain lazily from the first step. It is finite by
// construction: revisiting a step id fails with StepCycleError instead of
// looping. Walkers are single-use and not restartable.
type Walker struct {
	doc     *Docmap
	current *Step
	seen    map[string]bool
	started bool
	done    bool
}

// Walk returns a walker positioned before the first step.
func (d *Docmap) Walk() *Walker {
	return &Walker{doc: d, seen: make(map[string]bool)}
}

// Next returns the following step in the chain, or (nil, nil) once the chain
// terminates. After an error or termination every subsequent call returns
// (nil, nil).
func (w *Walker) Next() (*Step, error) {
	if w == nil || w.done {
		return nil, nil
	}

	if !w.started {
		w.started = true
		step, err := w.doc.FirstStep()
		if err != nil {
			w.done = true
			return nil, err
		}
		w.seen[w.doc.FirstStepID] = true
		w.current = step
		return step, nil
	}

	id := w.current.NextStepID
	if id == "" {
		w.done = true
		return nil, nil
	}
	if w.seen[id] {
		w.done = true
		return nil, &StepCycleError{ID: id}
	}
	step, ok := w.doc.Steps[id]
	if !ok || step == nil {
		w.done = true
		return nil, &MissingStepError{ID: id}
	}
	w.seen[id] = true
	w.current = step
	return step, nil
}

// TerminalStep walks the full chain and returns the step with no next-step.
func (d *Docmap) TerminalStep() (*Step, error) {
	walker := d.Walk()
	var last *Step
	for {
		step, err := walker.Next()
		if err != nil {
			return nil, err
		}
		if step == nil {
			break
		}
		last = step
	}
	if last == nil {
		return nil, &MissingStepError{ID: d.FirstStepID}
	}
	return last, nil
}
