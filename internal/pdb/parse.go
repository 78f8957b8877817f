package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jyesselm/find-pair-sub002/internal/geom"
)

// Parse reads a PDB coordinate file from r. Only the first model of a
// multi-model file is kept, and alternate locations other than blank/'A'/'1'
// are dropped so every atom appears exactly once.
func Parse(r io.Reader) (*Structure, error) {
	s := &Structure{}
	var cur *Residue
	var curKey string
	atomSerial := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 6 {
			continue
		}
		record := strings.TrimSpace(line[:6])
		switch record {
		case "ENDMDL":
			// First model only.
			finishResidue(s, cur)
			return finish(s)
		case "ATOM", "HETATM":
		default:
			continue
		}

		if len(line) < 54 {
			return nil, fmt.Errorf("pdb: short %s record: %q", record, line)
		}

		altLoc := strings.TrimSpace(line[16:17])
		if altLoc != "" && altLoc != "A" && altLoc != "1" {
			continue
		}

		x, err1 := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
		z, err3 := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("pdb: bad coordinates in record: %q", line)
		}

		padded := line[12:16]
		atomSerial++
		atom := &Atom{
			Serial:     atomSerial,
			Name:       normalizeAtomName(padded),
			PaddedName: padded,
			AltLoc:     altLoc,
			Pos:        geom.Vec{X: x, Y: y, Z: z},
		}
		if len(line) >= 78 {
			atom.Element = strings.TrimSpace(line[76:78])
		}
		if atom.Element == "" {
			atom.Element = ElementFromName(padded)
		}
		if len(line) >= 60 {
			atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
		}
		if len(line) >= 66 {
			atom.BFactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
		}

		resName := strings.TrimSpace(line[17:20])
		chainID := strings.TrimSpace(line[21:22])
		seq, _ := strconv.Atoi(strings.TrimSpace(line[22:26]))
		iCode := strings.TrimSpace(line[26:27])

		key := chainID + "|" + strconv.Itoa(seq) + "|" + iCode + "|" + resName
		if cur == nil || key != curKey {
			finishResidue(s, cur)
			cur = &Residue{Name: resName, Seq: seq, Chain: chainID, ICode: iCode}
			curKey = key
		}
		cur.Atoms = append(cur.Atoms, atom)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pdb: read: %w", err)
	}
	finishResidue(s, cur)
	return finish(s)
}

// ParseFile reads a PDB file from disk; the structure ID is taken from the
// file name.
func ParseFile(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdb: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	s.ID = strings.TrimSuffix(base, filepath.Ext(base))
	return s, nil
}

func finish(s *Structure) (*Structure, error) {
	if s.NumResidues() == 0 {
		return nil, fmt.Errorf("pdb: no atom records found")
	}
	return s, nil
}

func finishResidue(s *Structure, r *Residue) {
	if r == nil {
		return
	}
	r.Kind = classifyKind(r)
	s.AddResidue(r)
}

// normalizeAtomName trims the padded column form and rewrites the legacy
// '*' sugar-atom spelling (C1*) to the modern prime form (C1').
func normalizeAtomName(padded string) string {
	name := strings.TrimSpace(padded)
	return strings.ReplaceAll(name, "*", "'")
}
