package steps

import "fmt"

// Content derives the ordered content item list from the first step: one item
// per action, in declaration order, taking each action's first output. The
// list is never re-sorted downstream.
func (d *Docmap) Content() ([]ContentItem, error) {
	step, err := d.FirstStep()
	if err != nil {
		return nil, err
	}

	items := make([]ContentItem, 0, len(step.Actions))
	for i, action := range step.Actions {
		if len(action.Outputs) == 0 {
			return nil, &MalformedDocmapError{Reason: fmt.Sprintf("action %d has no outputs", i)}
		}
		output := action.Outputs[0]
		items = append(items, ContentItem{
			Type:       output.Type,
			Published:  output.Published,
			WebContent: firstWebContent(output),
		})
	}
	return items, nil
}

// Preprint returns the preprint reference assumed to be the first input of the
// first step.
func (d *Docmap) Preprint() (Item, error) {
	step, err := d.FirstStep()
	if err != nil {
		return Item{}, err
	}
	if len(step.Inputs) == 0 {
		return Item{}, &MalformedDocmapError{Reason: "first step has no inputs"}
	}
	return step.Inputs[0], nil
}

// PreprintHistory walks the full chain and emits one event per step whose
// assertions reference a preprint item. The first event overall is typed
// "preprint"; every later one "reviewed-preprint". Event dates resolve to the
// assertion's happened timestamp, then to the published timestamp of the
// step's matching preprint output, then to the TBC placeholder.
func (d *Docmap) PreprintHistory() ([]PreprintEvent, error) {
	var events []PreprintEvent
	walker := d.Walk()
	for {
		step, err := walker.Next()
		if err != nil {
			return nil, err
		}
		if step == nil {
			return events, nil
		}

		assertion, ok := preprintAssertion(step)
		if !ok {
			continue
		}

		eventType := EventReviewedPreprint
		if len(events) == 0 {
			eventType = EventPreprint
		}
		events = append(events, PreprintEvent{
			Type:    eventType,
			DOI:     assertion.Item.DOI,
			Version: assertion.Item.VersionIdentifier,
			Date:    eventDate(step, assertion),
		})
	}
}

// PreprintReviewDate returns the happened timestamp of the first under-review
// assertion about a preprint, in walk order. An empty docmap, or a chain with
// no such assertion, yields an empty date and no error.
func (d *Docmap) PreprintReviewDate() (string, error) {
	if d.IsEmpty() {
		return "", nil
	}
	walker := d.Walk()
	for {
		step, err := walker.Next()
		if err != nil {
			return "", err
		}
		if step == nil {
			return "", nil
		}
		for _, assertion := range step.Assertions {
			if assertion.Status == "under-review" && assertion.Item.Type == "preprint" {
				return assertion.Happened, nil
			}
		}
	}
}

// LatestPreprint returns the most specific preprint reference among the
// terminal step's inputs. Specificity is the count of populated identifying
// fields (doi, url, versionIdentifier, published); ties resolve to the later
// declaration, since later inputs describe later versions.
func (d *Docmap) LatestPreprint() (Item, error) {
	step, err := d.TerminalStep()
	if err != nil {
		return Item{}, err
	}
	if len(step.Inputs) == 0 {
		return Item{}, &MalformedDocmapError{Reason: "terminal step has no inputs"}
	}

	best := step.Inputs[0]
	bestScore := specificity(best)
	for _, input := range step.Inputs[1:] {
		if score := specificity(input); score >= bestScore {
			best = input
			bestScore = score
		}
	}
	return best, nil
}

func firstWebContent(output Output) string {
	for _, content := range output.Content {
		if content.Type == "web-content" {
			return content.URL
		}
	}
	return ""
}

func preprintAssertion(step *Step) (Assertion, bool) {
	for _, assertion := range step.Assertions {
		if assertion.Item.Type == "preprint" {
			return assertion, true
		}
	}
	return Assertion{}, false
}

func eventDate(step *Step, assertion Assertion) string {
	if assertion.Happened != "" {
		return assertion.Happened
	}
	if published := preprintOutputPublished(step, assertion.Item.DOI); published != "" {
		return published
	}
	return DateTBC
}

// preprintOutputPublished finds the published timestamp of the step's preprint
// output, preferring a DOI match over the first preprint-typed output.
func preprintOutputPublished(step *Step, doi string) string {
	var fallback string
	for _, action := range step.Actions {
		for _, output := range action.Outputs {
			if output.Type != "preprint" {
				continue
			}
			if doi != "" && output.DOI == doi && output.Published != "" {
				return output.Published
			}
			if fallback == "" {
				fallback = output.Published
			}
		}
	}
	return fallback
}

func specificity(item Item) int {
	score := 0
	for _, field := range []string{item.DOI, item.URL, item.VersionIdentifier, item.Published} {
		if field != "" {
			score++
		}
	}
	return score
}
