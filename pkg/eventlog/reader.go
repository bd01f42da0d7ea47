package eventlog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"teamgraph/pkg/common"
	"teamgraph/pkg/loader"
	"teamgraph/pkg/loader/csv"
	"teamgraph/pkg/logger"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrDatasetNotFound is returned when the backing files of a dataset are absent.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrSchema is matched by every *SchemaError.
	ErrSchema = errors.New("schema error")
)

// SchemaError reports a dataset file whose columns or values do not match
// the expected layout.
type SchemaError struct {
	File    string
	Missing []string
	Reason  string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing columns %s", e.File, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

var (
	eventColumns  = []string{"sequenceId", "event", "entityId"}
	entityColumns = []string{"entityId", "ParameterKey", "ParameterValue"}
)

// Reader loads event logs and their attribute tables through a
// DatasetFileLoader and normalizes them into a common.Dataset.
type Reader struct {
	loader loader.DatasetFileLoader
}

// NewReader creates a Reader backed by the given loader.
func NewReader(l loader.DatasetFileLoader) *Reader {
	return &Reader{loader: l}
}

// Read loads the dataset with the given id. Missing event or entity files
// yield ErrDatasetNotFound, missing columns a *SchemaError. Failures are
// returned as is; there are no retries.
func (r *Reader) Read(ctx context.Context, datasetID string) (*common.Dataset, error) {
	if !validDatasetID(datasetID) {
		return nil, fmt.Errorf("%q: %w", datasetID, ErrDatasetNotFound)
	}

	var eventsRaw, entitiesRaw, variablesRaw []byte
	eg, gCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		eventsRaw, err = r.loader.GetFile(gCtx, loader.DatasetFile{Dataset: datasetID, Name: loader.EventsFile})
		return err
	})
	eg.Go(func() error {
		var err error
		entitiesRaw, err = r.loader.GetFile(gCtx, loader.DatasetFile{Dataset: datasetID, Name: loader.EntitiesFile})
		return err
	})
	eg.Go(func() error {
		var err error
		variablesRaw, err = r.loader.GetFile(gCtx, loader.DatasetFile{Dataset: datasetID, Name: loader.VariablesFile})
		if errors.Is(err, loader.ErrFileNotFound) {
			variablesRaw = nil
			return nil
		}
		return err
	})
	if err := eg.Wait(); err != nil {
		if errors.Is(err, loader.ErrFileNotFound) {
			return nil, fmt.Errorf("%q: %w: %v", datasetID, ErrDatasetNotFound, err)
		}
		return nil, fmt.Errorf("failed to load dataset %q: %w", datasetID, err)
	}

	events, err := parseEvents(eventsRaw)
	if err != nil {
		return nil, err
	}
	entities, err := parseEntities(entitiesRaw)
	if err != nil {
		return nil, err
	}

	ds := &common.Dataset{
		ID:           datasetID,
		Events:       events,
		Entities:     entities,
		Teams:        collectTeams(events),
		Behaviours:   collectBehaviours(events),
		Participants: buildRoster(entities),
		Meetings:     collectMeetings(events),
		Groups:       map[string]map[string][]string{},
	}
	if variablesRaw != nil {
		ds.Groups = parseVariables(variablesRaw)
	}

	logger.Debug("[EventLog] Dataset loaded",
		"dataset", datasetID,
		"events", len(ds.Events),
		"teams", len(ds.Teams)-1,
		"meetings", len(ds.Meetings)-1,
		"participants", len(ds.Participants),
	)

	return ds, nil
}

func validDatasetID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

func parseEvents(content []byte) ([]common.EventRecord, error) {
	table, err := csv.ParseTable(content)
	if err != nil {
		return nil, &SchemaError{File: loader.EventsFile, Reason: err.Error()}
	}
	if missing := table.Missing(eventColumns...); len(missing) > 0 {
		return nil, &SchemaError{File: loader.EventsFile, Missing: missing}
	}

	events := make([]common.EventRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		event := table.Get(row, "event")
		if event == common.OnlineEvent {
			continue
		}
		entityID, err := parseEntityID(table.Get(row, "entityId"))
		if err != nil {
			return nil, &SchemaError{
				File:   loader.EventsFile,
				Reason: fmt.Sprintf("row %d: invalid entityId: %v", i+2, err),
			}
		}
		events = append(events, common.EventRecord{
			SequenceID: table.Get(row, "sequenceId"),
			Event:      event,
			EntityID:   entityID,
		})
	}

	return events, nil
}

func parseEntities(content []byte) ([]common.EntityAttribute, error) {
	table, err := csv.ParseTable(content)
	if err != nil {
		return nil, &SchemaError{File: loader.EntitiesFile, Reason: err.Error()}
	}
	if missing := table.Missing(entityColumns...); len(missing) > 0 {
		return nil, &SchemaError{File: loader.EntitiesFile, Missing: missing}
	}

	entities := make([]common.EntityAttribute, 0, len(table.Rows))
	for i, row := range table.Rows {
		entityID, err := parseEntityID(table.Get(row, "entityId"))
		if err != nil {
			return nil, &SchemaError{
				File:   loader.EntitiesFile,
				Reason: fmt.Sprintf("row %d: invalid entityId: %v", i+2, err),
			}
		}
		entities = append(entities, common.EntityAttribute{
			EntityID:   entityID,
			Key:        table.Get(row, "ParameterKey"),
			Value:      table.Get(row, "ParameterValue"),
			SequenceID: table.Get(row, "sequenceId"),
		})
	}

	return entities, nil
}

// parseEntityID accepts integer and float encodings ("3", "3.0"); empty and
// NaN values mean no participant.
func parseEntityID(value string) (int, error) {
	if value == "" || strings.EqualFold(value, "nan") {
		return common.NoEntity, nil
	}
	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func collectTeams(events []common.EventRecord) []string {
	teams := distinctSorted(events, func(e common.EventRecord) string { return e.Team() })
	return append([]string{common.All}, teams...)
}

func collectMeetings(events []common.EventRecord) []string {
	meetings := distinctSorted(events, func(e common.EventRecord) string { return e.Meeting() })
	return append(meetings, common.All)
}

func collectBehaviours(events []common.EventRecord) []string {
	seen := make(map[string]struct{})
	var behaviours []string
	for _, e := range events {
		if e.Event == common.BreakEvent {
			continue
		}
		if _, ok := seen[e.Event]; ok {
			continue
		}
		seen[e.Event] = struct{}{}
		behaviours = append(behaviours, e.Event)
	}
	return behaviours
}

func distinctSorted(events []common.EventRecord, key func(common.EventRecord) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, e := range events {
		v := key(e)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
