package waveform

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// OpenCSV reads a single exported (time, acceleration) trace from a
// two-column CSV file and wraps it as a one-channel Source.
//
// Leading lines of the form "# key=value" declare channel metadata
// (SENTYPD, SENLOCD, AXISD, name). An exported trace with no metadata is
// assumed to be a CG-mounted X-axis accelerometer, which is what the
// download tooling exports.
func OpenCSV(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	props := map[string]string{
		PropSensorType:     "ACCELEROMETER",
		PropSensorLocation: "VEHICLE CG",
		PropAxis:           "X-LONGITUDINAL",
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var times, values []float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	headerSkipped := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			key, val, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "#")), "=")
			if ok {
				if strings.EqualFold(key, "name") {
					name = strings.TrimSpace(val)
				} else {
					props[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(val)
				}
			}
			continue
		}

		tStr, vStr, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("csv line %d: want \"time,value\", got %q", lineNo, line)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(tStr), 64)
		if err != nil {
			// Tolerate a single textual header row before the data.
			if len(times) == 0 && !headerSkipped {
				headerSkipped = true
				continue
			}
			return nil, fmt.Errorf("csv line %d: bad time %q: %w", lineNo, tStr, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(vStr), 64)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: bad value %q: %w", lineNo, vStr, err)
		}
		times = append(times, t)
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	ch := &MemoryChannel{ChannelName: name, Props: props, Data: values, Time: times}
	return &MemorySource{GroupList: []Group{
		&MemoryGroup{GroupName: "exported", Chans: []Channel{ch}},
	}}, nil
}
