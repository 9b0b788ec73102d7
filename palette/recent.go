package palette

import "cmdpalette/model"

// Recent returns a copy of the recent commands, most recent first.
func (p *Palette) Recent() []model.Command {
	return append([]model.Command(nil), p.recent...)
}

// pushRecent moves cmd to the front of the recent list.
func (p *Palette) pushRecent(cmd model.Command) {
	recent := make([]model.Command, 0, p.maxRecent)
	recent = append(recent, cmd)
	for _, r := range p.recent {
		if len(recent) == p.maxRecent {
			break
		}
		if r.Code != cmd.Code {
			recent = append(recent, r)
		}
	}
	p.recent = recent
}

func (p *Palette) loadRecent() {
	p.recent = nil
	if p.store == nil {
		return
	}

	codes, err := p.store.ReadStringList(SettingsGroup, RecentCommandsKey)
	if err != nil {
		p.logger.Printf("palette: read recent commands: %v", err)
		return
	}

	byCode := make(map[string]model.Command, len(p.all))
	for _, cmd := range p.all {
		byCode[cmd.Code] = cmd
	}

	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		cmd, ok := byCode[code]
		if !ok || seen[code] {
			continue
		}
		seen[code] = true
		p.recent = append(p.recent, cmd)
		if len(p.recent) == p.maxRecent {
			break
		}
	}
}

func (p *Palette) saveRecent() {
	if p.store == nil {
		return
	}

	codes := make([]string, len(p.recent))
	for i, cmd := range p.recent {
		codes[i] = cmd.Code
	}
	if err := p.store.WriteStringList(SettingsGroup, RecentCommandsKey, codes); err != nil {
		p.logger.Printf("palette: write recent commands: %v", err)
	}
}
