package germinalgtk

/*
#cgo pkg-config: gtk+-3.0 pangocairo
#include <stdlib.h>
#include <gtk/gtk.h>
#include <gdk/gdk.h>
#include <pango/pangocairo.h>

static int event_type(GdkEvent *ev) {
    return gdk_event_get_event_type(ev);
}

// Returns 1 when the event came from a touchpad
static int event_from_touchpad(GdkEvent *ev) {
    GdkDevice *dev = gdk_event_get_source_device(ev);
    if (!dev) return 0;
    return gdk_device_get_source(dev) == GDK_SOURCE_TOUCHPAD;
}

// Fills codes with the hardware keycodes producing "0" on the current
// layout and returns how many there are (at most max)
static int zero_keycodes(guint16 *codes, int max) {
    GdkDisplay *display = gdk_display_get_default();
    if (!display) return 0;
    GdkKeymap *keymap = gdk_keymap_get_for_display(display);
    GdkKeymapKey *keys = NULL;
    gint n = 0;
    if (!gdk_keymap_get_entries_for_keyval(keymap, GDK_KEY_0, &keys, &n)) return 0;
    int count = 0;
    for (int i = 0; i < n && count < max; i++) {
        codes[count++] = (guint16)keys[i].keycode;
    }
    g_free(keys);
    return count;
}

// Cell size for a font. Must stay in step with the widget's own
// measurement: width of "M", height of ascent plus descent.
static void cell_metrics(const char *family, int size, int *width, int *height) {
    cairo_surface_t *surface = cairo_image_surface_create(CAIRO_FORMAT_ARGB32, 1, 1);
    cairo_t *cr = cairo_create(surface);
    PangoLayout *layout = pango_cairo_create_layout(cr);

    PangoFontDescription *desc = pango_font_description_new();
    pango_font_description_set_family(desc, family);
    pango_font_description_set_size(desc, size * PANGO_SCALE);
    pango_layout_set_font_description(layout, desc);
    pango_layout_set_text(layout, "M", -1);

    int h;
    pango_layout_get_pixel_size(layout, width, &h);

    PangoContext *context = pango_layout_get_context(layout);
    PangoFontMetrics *metrics = pango_context_get_metrics(context, desc, NULL);
    *height = pango_font_metrics_get_ascent(metrics) / PANGO_SCALE +
              pango_font_metrics_get_descent(metrics) / PANGO_SCALE;

    pango_font_metrics_unref(metrics);
    pango_font_description_free(desc);
    g_object_unref(layout);
    cairo_destroy(cr);
    cairo_surface_destroy(surface);
}
*/
import "C"

import (
	"unsafe"

	"github.com/gotk3/gotk3/gdk"
	"github.com/phroun/germinal"
)

func nativeEvent(ev *gdk.Event) *C.GdkEvent {
	return (*C.GdkEvent)(unsafe.Pointer(ev.Native()))
}

func isButtonPress(ev *gdk.Event) bool {
	t := C.event_type(nativeEvent(ev))
	return t == C.GDK_BUTTON_PRESS || t == C.GDK_2BUTTON_PRESS
}

func isDoubleClick(ev *gdk.Event) bool {
	return C.event_type(nativeEvent(ev)) == C.GDK_2BUTTON_PRESS
}

func isScroll(ev *gdk.Event) bool {
	return C.event_type(nativeEvent(ev)) == C.GDK_SCROLL
}

func eventDevice(ev *gdk.Event) germinal.DeviceKind {
	if C.event_from_touchpad(nativeEvent(ev)) != 0 {
		return germinal.DeviceTouchpad
	}
	return germinal.DeviceMouse
}

// zeroKeycodes returns the hardware keycodes that type "0" on the current
// keyboard layout
func zeroKeycodes() []uint16 {
	var codes [16]C.guint16
	n := int(C.zero_keycodes(&codes[0], C.int(len(codes))))
	out := make([]uint16, n)
	for i := range out {
		out[i] = uint16(codes[i])
	}
	return out
}

func cellMetrics(family string, size int) (width, height int) {
	cfamily := C.CString(family)
	defer C.free(unsafe.Pointer(cfamily))
	var w, h C.int
	C.cell_metrics(cfamily, C.int(size), &w, &h)
	return int(w), int(h)
}

func modifiers(state gdk.ModifierType) germinal.Modifier {
	var mods germinal.Modifier
	if state&gdk.SHIFT_MASK != 0 {
		mods |= germinal.ModShift
	}
	if state&gdk.CONTROL_MASK != 0 {
		mods |= germinal.ModControl
	}
	if state&gdk.MOD1_MASK != 0 {
		mods |= germinal.ModAlt
	}
	if state&gdk.SUPER_MASK != 0 {
		mods |= germinal.ModSuper
	}
	return mods
}

func keyEvent(ev *gdk.Event) germinal.KeyEvent {
	key := gdk.EventKeyNewFromEvent(ev)
	return germinal.KeyEvent{
		Keyval:  germinal.Keyval(key.KeyVal()),
		Keycode: key.HardwareKeyCode(),
		Mods:    modifiers(gdk.ModifierType(key.State())),
	}
}

func scrollEvent(ev *gdk.Event) germinal.ScrollEvent {
	scroll := gdk.EventScrollNewFromEvent(ev)
	out := germinal.ScrollEvent{
		DeltaY: scroll.DeltaY(),
		Device: eventDevice(ev),
		Mods:   modifiers(gdk.ModifierType(scroll.State())),
	}
	switch scroll.Direction() {
	case gdk.SCROLL_UP:
		out.Direction = germinal.ScrollUp
	case gdk.SCROLL_DOWN:
		out.Direction = germinal.ScrollDown
	case gdk.SCROLL_LEFT:
		out.Direction = germinal.ScrollLeft
	case gdk.SCROLL_RIGHT:
		out.Direction = germinal.ScrollRight
	default:
		out.Direction = germinal.ScrollSmooth
	}
	return out
}
