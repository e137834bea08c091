package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glecs/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityID
	Enabled        bool
	ComponentTypes []string
	ComponentCount int
}

// CollectEntities describes every entity of scene, in ascending ID order.
func CollectEntities(scene *ecs.Scene) []EntityInfo {
	types := scene.ComponentTypes()
	entities := make([]EntityInfo, 0, scene.EntityCount())

	for e := range scene.Entities() {
		info := EntityInfo{ID: e.ID(), Enabled: e.IsEnabled()}
		for _, ct := range types {
			if scene.HasComponent(e, ct) {
				info.ComponentTypes = append(info.ComponentTypes, ct.Name())
			}
		}
		info.ComponentCount = len(info.ComponentTypes)
		entities = append(entities, info)
	}
	return entities
}

// EntityBrowser lists a scene's entities in a sortable, filterable, paged
// table. Selecting a row selects the entity for the component inspector.
type EntityBrowser struct {
	scene              *ecs.Scene
	entities           []EntityInfo
	sortColumn         int
	sortAscending      bool
	selected           *ecs.EntityID
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(scene *ecs.Scene, maxEntitiesPerPage int) *EntityBrowser {
	if maxEntitiesPerPage <= 0 {
		maxEntitiesPerPage = 100
	}
	return &EntityBrowser{
		scene:              scene,
		sortAscending:      true,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filteredEntities := eb.Filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Enabled")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filteredEntities = eb.Filtered()
		}

		startIdx := min(eb.currentPage*eb.maxEntitiesPerPage, len(filteredEntities))
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for _, entity := range filteredEntities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selected != nil && *eb.selected == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%t", entity.Enabled))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// refresh rebuilds the entity list. Entities toggle their enabled flag without
// the scene knowing, so the list is collected again on every read.
func (eb *EntityBrowser) refresh() {
	eb.entities = CollectEntities(eb.scene)
	eb.sortEntities()
}

// SortBy orders the list by a table column: 0 ID, 1 enabled, 2 component
// names, 3 component count.
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.sortColumn = column
	eb.sortAscending = ascending
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		if !eb.sortAscending {
			a, b = b, a
		}

		switch eb.sortColumn {
		case 1:
			return !a.Enabled && b.Enabled
		case 2:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			return a.ComponentCount < b.ComponentCount
		default:
			return a.ID < b.ID
		}
	})
}

// SetFilter keeps only entities whose ID or component names contain text,
// ignoring case.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// Filtered returns the current, sorted and filtered entity list.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	eb.refresh()
	if eb.filterText == "" {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

		if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
			continue
		}
		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowser) Select(id ecs.EntityID) {
	eb.selected = &id
}

// Selected returns the selected entity, or nil if none is selected or it is
// no longer in the scene.
func (eb *EntityBrowser) Selected() *ecs.Entity {
	if eb.selected == nil {
		return nil
	}
	return eb.scene.Entity(*eb.selected)
}
