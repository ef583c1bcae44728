package trc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Write renders a header and table back to the fixed TRC layout. It is used
// by the C3D converter; the emitted file round-trips through Read.
func Write(path string, header *Header, table *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trc file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "PathFileType\t4\t(X/Y/Z)\t%s\n", filepath.Base(path))
	fmt.Fprintln(w, "DataRate\tCameraRate\tNumFrames\tNumMarkers\tUnits\tOrigDataRate\tOrigDataStartFrame\tOrigNumFrames")
	fmt.Fprintf(w, "%g\t%g\t%d\t%d\t%s\t%g\t%d\t%d\n",
		header.DataRate, header.CameraRate, table.NumFrames(), len(table.Labels()),
		header.Units, header.OrigDataRate, header.OrigDataStartFrame, header.OrigNumFrames)
	fmt.Fprintln(w)

	labelCols := []string{"Frame#", "Time"}
	subCols := []string{"", ""}
	for i, l := range table.Labels() {
		labelCols = append(labelCols, l, "", "")
		subCols = append(subCols, fmt.Sprintf("X%d", i+1), fmt.Sprintf("Y%d", i+1), fmt.Sprintf("Z%d", i+1))
	}
	fmt.Fprintln(w, strings.Join(labelCols, "\t"))
	fmt.Fprintln(w, strings.Join(subCols, "\t"))

	for frame := 0; frame < table.NumFrames(); frame++ {
		cols := make([]string, 0, 2+3*len(table.Labels()))
		cols = append(cols,
			fmt.Sprintf("%d", frame+1),
			fmt.Sprintf("%g", header.FrameTime(frame)),
		)
		for m := range table.Labels() {
			s := table.SampleAt(frame, m)
			cols = append(cols,
				fmt.Sprintf("%g", s[0]),
				fmt.Sprintf("%g", s[1]),
				fmt.Sprintf("%g", s[2]),
			)
		}
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing trc file: %w", err)
	}
	return nil
}
