package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starfield/config"
)

// TuningPanel edits a draft copy of the configuration and submits the
// difference as a patch.
type TuningPanel struct {
	// Apply receives the patch when the user commits. It usually posts
	// the update onto the driver goroutine.
	Apply func(config.Patch) error

	draft   config.Config
	loaded  bool
	lastErr error
}

func NewTuningPanel(apply func(config.Patch) error) *TuningPanel {
	return &TuningPanel{Apply: apply}
}

// Draft returns the configuration being edited.
func (tp *TuningPanel) Draft() config.Config {
	return tp.draft
}

// Load discards pending edits and starts over from current.
func (tp *TuningPanel) Load(current config.Config) {
	tp.draft = current
	tp.loaded = true
	tp.lastErr = nil
}

// Set changes one draft field by key.
func (tp *TuningPanel) Set(key string, value any) error {
	return SetField(&tp.draft, key, value)
}

// Commit sends the difference between current and the draft to Apply. An
// unchanged draft sends nothing.
func (tp *TuningPanel) Commit(current config.Config) (config.Patch, error) {
	patch := config.Diff(current, tp.draft)
	if patch.Empty() {
		return patch, nil
	}
	if err := tp.draft.Validate(); err != nil {
		tp.lastErr = err
		return patch, err
	}
	if tp.Apply != nil {
		if err := tp.Apply(patch); err != nil {
			tp.lastErr = err
			return patch, err
		}
	}
	tp.lastErr = nil
	return patch, nil
}

// Err returns the error of the last commit.
func (tp *TuningPanel) Err() error {
	return tp.lastErr
}

func (tp *TuningPanel) Render(current config.Config) {
	if !tp.loaded {
		tp.Load(current)
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 520), imgui.CondOnce)
	if !imgui.BeginV("Starfield Settings", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	val := reflect.ValueOf(&tp.draft).Elem()
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		tp.renderField(field, val.Field(field.Index))
	}

	imgui.Separator()
	if imgui.Button("Apply") {
		tp.Commit(current)
	}
	imgui.SameLine()
	if imgui.Button("Revert") {
		tp.Load(current)
	}

	if tp.lastErr != nil {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), tp.lastErr.Error())
	}

	imgui.End()
}

func (tp *TuningPanel) renderField(field FieldInfo, val reflect.Value) {
	label := fmt.Sprintf("##%s", field.Key)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", field.Key))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			tp.Set(field.Key, v)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", field.Key))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 {
			tp.Set(field.Key, v)
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", field.Key))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) {
			tp.Set(field.Key, v)
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(field.Key, &v) {
			tp.Set(field.Key, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", field.Key))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			tp.Set(field.Key, v)
		}
	}
}
