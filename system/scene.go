package system

import (
	"github.com/milk9111/thirdperson/component"
	"github.com/sirupsen/logrus"
)

// SceneLookup finds scene objects by a "/" separated name path.
type SceneLookup interface {
	Lookup(path string) (any, bool)
}

// ScenePaths are the paths of the objects a controller drives, relative to
// the body.
type ScenePaths struct {
	CameraRig string `yaml:"camera_rig"`
	BodyPivot string `yaml:"body_pivot"`
}

func DefaultScenePaths() ScenePaths {
	return ScenePaths{CameraRig: "CameraPivot", BodyPivot: "Pivot"}
}

// Bindings are the optional scene objects of a controller.
type Bindings struct {
	Rig   component.Ref[component.Rig]
	Pivot component.Ref[component.Pivot]
}

// Bind resolves paths in scene. Anything missing is logged once here and
// left absent; the controller runs without it.
func Bind(scene SceneLookup, paths ScenePaths, log logrus.FieldLogger) Bindings {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return Bindings{
		Rig:   resolveRef[component.Rig](scene, paths.CameraRig, "camera rig", log),
		Pivot: resolveRef[component.Pivot](scene, paths.BodyPivot, "body pivot", log),
	}
}

func resolveRef[T any](scene SceneLookup, path, what string, log logrus.FieldLogger) component.Ref[T] {
	if scene == nil || path == "" {
		log.WithField("path", path).Warnf("%s not configured, continuing without it", what)
		return component.None[T]()
	}
	node, ok := scene.Lookup(path)
	if !ok || node == nil {
		log.WithField("path", path).Warnf("%s not found, continuing without it", what)
		return component.None[T]()
	}
	v, ok := node.(T)
	if !ok {
		log.WithField("path", path).Warnf("%s has unexpected type %T, continuing without it", what, node)
		return component.None[T]()
	}
	return component.Some(v)
}
