package parser

import (
	"fmt"
	"io"

	"github.com/lfvdata/atcviz/pkg/core"
)

// DecodeAirspaces reads and parses an airspace document. The returned errors
// are per airspace or per sector; whatever parsed is returned alongside them.
func (p *Parser) DecodeAirspaces(r io.Reader) ([]core.Airspace, []error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, []error{err}
	}
	return p.ParseAirspaces(doc)
}

// ParseAirspaces converts a normalized airspace document, a list of airspace
// objects. A malformed airspace or sector is reported and skipped; its
// siblings continue.
func (p *Parser) ParseAirspaces(doc any) ([]core.Airspace, []error) {
	items, ok := doc.([]any)
	if !ok {
		return nil, []error{invalid("", "airspaces", fmt.Errorf("expected array, got %T", doc))}
	}

	var (
		out  = make([]core.Airspace, 0, len(items))
		errs []error
	)
	for i, item := range items {
		asp, sectorErrs, err := parseAirspace(fmt.Sprintf("airspace[%d]", i), item)
		if err != nil {
			p.logger.Debug("Skipping airspace", "index", i, "error", err)
			errs = append(errs, err)
			continue
		}
		for _, serr := range sectorErrs {
			p.logger.Debug("Skipping sector", "airspace", asp.Name, "error", serr)
		}
		errs = append(errs, sectorErrs...)
		out = append(out, asp)
	}

	p.logger.Debug("Parsed airspace document", "airspaces", len(out), "failed", len(errs))
	return out, errs
}

// parseAirspace returns the airspace with every sector that parsed, together
// with the errors of the sectors that did not.
func parseAirspace(fallbackID string, v any) (core.Airspace, []error, error) {
	o, err := newObject(fallbackID, "", v)
	if err != nil {
		return core.Airspace{}, nil, err
	}

	var asp core.Airspace
	if asp.Name, err = o.text("name"); err != nil {
		return core.Airspace{}, nil, err
	}
	o.record = asp.Name
	if asp.CentreID, err = o.text("centre_id"); err != nil {
		return core.Airspace{}, nil, err
	}

	points, err := o.list("points")
	if err != nil {
		return core.Airspace{}, nil, err
	}
	asp.Points = make([]core.NamedPoint, 0, len(points))
	for i, item := range points {
		po, err := newObject(asp.Name, fmt.Sprintf("points[%d]", i), item)
		if err != nil {
			return core.Airspace{}, nil, err
		}
		var pt core.NamedPoint
		if pt.Name, err = po.text("name"); err != nil {
			return core.Airspace{}, nil, err
		}
		if pt.Lat, err = po.number("lat"); err != nil {
			return core.Airspace{}, nil, err
		}
		if pt.Lon, err = po.number("lon"); err != nil {
			return core.Airspace{}, nil, err
		}
		asp.Points = append(asp.Points, pt)
	}

	sectors, err := o.list("sectors")
	if err != nil {
		return core.Airspace{}, nil, err
	}
	var sectorErrs []error
	asp.Sectors = make([]core.Sector, 0, len(sectors))
	for i, item := range sectors {
		sec, err := parseSector(asp.Name, fmt.Sprintf("sectors[%d]", i), item)
		if err != nil {
			sectorErrs = append(sectorErrs, err)
			continue
		}
		asp.Sectors = append(asp.Sectors, sec)
	}
	return asp, sectorErrs, nil
}

func parseSector(record, path string, v any) (core.Sector, error) {
	o, err := newObject(record, path, v)
	if err != nil {
		return core.Sector{}, err
	}
	var sec core.Sector
	if sec.Name, err = o.text("name"); err != nil {
		return core.Sector{}, err
	}
	volumes, err := o.list("volumes")
	if err != nil {
		return core.Sector{}, err
	}
	sec.Volumes = make([]core.SectorVolume, 0, len(volumes))
	for i, item := range volumes {
		vol, err := parseVolume(record, fmt.Sprintf("%s.volumes[%d]", path, i), item)
		if err != nil {
			return core.Sector{}, err
		}
		sec.Volumes = append(sec.Volumes, vol)
	}
	return sec, nil
}

func parseVolume(record, path string, v any) (core.SectorVolume, error) {
	o, err := newObject(record, path, v)
	if err != nil {
		return core.SectorVolume{}, err
	}
	var vol core.SectorVolume
	if vol.MinAltFt, err = o.number("min_alt"); err != nil {
		return core.SectorVolume{}, err
	}
	if vol.MaxAltFt, err = o.number("max_alt"); err != nil {
		return core.SectorVolume{}, err
	}
	coords, err := o.list("coordinates")
	if err != nil {
		return core.SectorVolume{}, err
	}
	vol.Boundary = make([]core.LonLat, 0, len(coords))
	for i, item := range coords {
		co, err := newObject(record, fmt.Sprintf("%s.coordinates[%d]", path, i), item)
		if err != nil {
			return core.SectorVolume{}, err
		}
		var ll core.LonLat
		if ll.Lon, err = co.number("lon"); err != nil {
			return core.SectorVolume{}, err
		}
		if ll.Lat, err = co.number("lat"); err != nil {
			return core.SectorVolume{}, err
		}
		vol.Boundary = append(vol.Boundary, ll)
	}
	return vol, nil
}
