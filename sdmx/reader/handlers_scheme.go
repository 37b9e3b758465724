package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

// Each top-level ItemScheme element collects every item of its kind left
// on the working stack since the scheme opened (structurally guaranteed to
// be exactly this scheme's own items, since XML nesting is strict and each
// sibling scheme fully drains its own items before the next one opens),
// builds the Maintainable envelope, and files the result both into the
// persistent maintained-artefact index (so later references resolve
// eagerly) and into the Message's typed map.
func init() {
	onEnd("AgencyScheme", func(rd *Reader, f *frame) error {
		s := &sdmx.ItemScheme[*sdmx.Agency]{Maintainable: rd.buildMaintainable(f)}
		for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassAgency)) {
			s.Items = append(s.Items, v.(*sdmx.Agency))
		}
		rd.maintained.commit(sdmx.ClassAgencyScheme, s.ID, s)
		rd.msg.OrganisationScheme[s.ID] = s
		return nil
	})
	onEnd("OrganisationScheme", func(rd *Reader, f *frame) error {
		s := &sdmx.ItemScheme[*sdmx.Agency]{Maintainable: rd.buildMaintainable(f)}
		for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassAgency)) {
			s.Items = append(s.Items, v.(*sdmx.Agency))
		}
		rd.maintained.commit(sdmx.ClassOrganisationScheme, s.ID, s)
		rd.msg.OrganisationScheme[s.ID] = s
		return nil
	})
	onEnd("Codelist", func(rd *Reader, f *frame) error {
		s := &sdmx.ItemScheme[*sdmx.Code]{Maintainable: rd.buildMaintainable(f)}
		for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassCode)) {
			s.Items = append(s.Items, v.(*sdmx.Code))
		}
		rd.maintained.commit(sdmx.ClassCodelist, s.ID, s)
		rd.msg.Codelist[s.ID] = s
		return nil
	})
	onEnd("ConceptScheme", func(rd *Reader, f *frame) error {
		s := &sdmx.ItemScheme[*sdmx.Concept]{Maintainable: rd.buildMaintainable(f)}
		for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassConcept)) {
			s.Items = append(s.Items, v.(*sdmx.Concept))
		}
		rd.maintained.commit(sdmx.ClassConceptScheme, s.ID, s)
		rd.msg.ConceptScheme[s.ID] = s
		return nil
	})
	onEnd("CategoryScheme", func(rd *Reader, f *frame) error {
		s := &sdmx.ItemScheme[*sdmx.Category]{Maintainable: rd.buildMaintainable(f)}
		for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassCategory)) {
			s.Items = append(s.Items, v.(*sdmx.Category))
		}
		rd.maintained.commit(sdmx.ClassCategoryScheme, s.ID, s)
		rd.msg.CategoryScheme[s.ID] = s
		return nil
	})
	onEnd("DataProviderScheme", func(rd *Reader, f *frame) error {
		s := &sdmx.ItemScheme[*sdmx.DataProvider]{Maintainable: rd.buildMaintainable(f)}
		for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassDataProvider)) {
			s.Items = append(s.Items, v.(*sdmx.DataProvider))
		}
		rd.maintained.commit(sdmx.ClassDataProviderScheme, s.ID, s)
		// DataProviderScheme has no dedicated Message field; it is
		// reachable through any DataProvider reference a ContentConstraint
		// or dataflow's provision agreement resolves.
		return nil
	})

	onEnd("Categorisation", func(rd *Reader, f *frame) error {
		c := &sdmx.Categorisation{Maintainable: rd.buildMaintainable(f)}
		if v := rd.stk.popSingleKey("Source"); v != nil {
			ref := v.(*Reference)
			if art, err := rd.resolve(*ref); err == nil {
				if id, ok := art.(sdmx.Identified); ok {
					c.Artefact = id
				}
			} else {
				rd.warn(err)
			}
		}
		if v := rd.stk.popSingleKey("Target"); v != nil {
			ref := v.(*Reference)
			ref.applyHint(sdmx.ClassCategory)
			if cat, err := rd.resolve(*ref); err == nil {
				if category, ok := cat.(*sdmx.Category); ok {
					c.Category = category
				}
			} else {
				rd.warn(err)
			}
		}
		rd.maintained.commit(sdmx.ClassCategorisation, c.ID, c)
		return nil
	})
}
