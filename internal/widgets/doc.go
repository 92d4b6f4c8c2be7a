// Package widgets composes the overlay, list navigation and input pieces
// into ready-made controls: DropdownBase and its Dropdown, Select and
// PopoverMenu variants, plus the trigger and input-affix helpers they share.
//
// Widgets are driven like Bubble Tea components. Each one exposes Update,
// which returns the commands its popover needs, and View. Widgets anchored
// to a node of an overlay.Tree must be mounted before use and draw their
// panel over the screen through Overlay.
package widgets
