// Package batch is the file-processing collaborator: it reads rows of four
// comma-separated crisp inputs, evaluates each one through the diagnosis
// service, and writes one output line per input row. Malformed rows are
// reported inline and never abort the batch.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nullcipherr/fuzzdx/internal/anxiety"
	"github.com/nullcipherr/fuzzdx/internal/diagnose"
	"github.com/nullcipherr/fuzzdx/internal/events"
	"github.com/nullcipherr/fuzzdx/internal/fuzz"
	"github.com/nullcipherr/fuzzdx/internal/store"
)

// Processor fans batch rows out over a worker pool. Evaluations are
// independent of each other, so the only synchronization is collecting
// results back into input order.
type Processor struct {
	service *diagnose.Service
	events  events.Client
	workers int
	logger  *slog.Logger
}

type Summary struct {
	Rows   int
	Errors int
}

func NewProcessor(service *diagnose.Service, ev events.Client, workers int, logger *slog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{service: service, events: ev, workers: workers, logger: logger}
}

// Process reads input rows, evaluates them with the given method (empty for
// the service default), and writes one result line per row, in input order:
//
//	Caso <n>: <level>
//	Erro na linha <n>: <reason>
//
// Row numbering is 1-based. A method the engine does not recognize fails the
// whole batch before any row is processed.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer, methodName string) (Summary, error) {
	if methodName != "" {
		if _, err := fuzz.ParseMethod(methodName); err != nil {
			return Summary{}, err
		}
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Summary{}, fmt.Errorf("read input: %w", err)
	}

	results := make([]string, len(lines))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for n := 0; n < p.workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.processRow(ctx, i+1, lines[i], methodName)
			}
		}()
	}
	for i := range lines {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := Summary{Rows: len(lines)}
	bw := bufio.NewWriter(w)
	for _, line := range results {
		if strings.HasPrefix(line, "Erro") {
			summary.Errors++
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return summary, fmt.Errorf("write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return summary, fmt.Errorf("write output: %w", err)
	}

	if p.events != nil {
		ev := events.BatchCompletedEvent{
			Rows:      summary.Rows,
			Errors:    summary.Errors,
			Method:    methodName,
			Timestamp: time.Now().UTC(),
		}
		if err := p.events.Publish(events.SubjectBatchCompleted(), ev); err != nil {
			p.logger.Warn("failed to publish batch event", "error", err)
		}
	}

	p.logger.Info("batch completed", "rows", summary.Rows, "errors", summary.Errors)
	return summary, nil
}

func (p *Processor) processRow(ctx context.Context, lineNo int, line, methodName string) string {
	inputs, err := ParseRow(line)
	if err != nil {
		return fmt.Sprintf("Erro na linha %d: %s", lineNo, err)
	}
	result, err := p.service.Diagnose(ctx, inputs.Map(), methodName, store.SourceBatch)
	if err != nil {
		return fmt.Sprintf("Erro na linha %d: %s", lineNo, err)
	}
	return fmt.Sprintf("Caso %d: %s", lineNo, result.Level)
}

// ParseRow parses one input row: heart rate, worry, sleep quality, muscle
// tension, comma-separated in that fixed order.
func ParseRow(line string) (anxiety.Inputs, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 4 {
		return anxiety.Inputs{}, fmt.Errorf("formato inválido")
	}
	values := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return anxiety.Inputs{}, fmt.Errorf("valores inválidos")
		}
		values[i] = v
	}
	return anxiety.Inputs{
		HeartRate:     values[0],
		Worry:         values[1],
		SleepQuality:  values[2],
		MuscleTension: values[3],
	}, nil
}
