package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scene is a snapshot of every state a store holds, keyed by id.
type Scene struct {
	Transforms       map[string]Matrix4        `yaml:"transforms,omitempty" json:"transforms,omitempty"`
	Cameras          map[string]Camera         `yaml:"cameras,omitempty" json:"cameras,omitempty"`
	ROIs             map[string]ROI            `yaml:"rois,omitempty" json:"rois,omitempty"`
	VolumeProperties map[string]VolumeProperty `yaml:"volumeProperties,omitempty" json:"volumeProperties,omitempty"`
}

// Clone returns a deep copy of the scene.
func (s Scene) Clone() Scene {
	out := Scene{}
	if s.Transforms != nil {
		out.Transforms = make(map[string]Matrix4, len(s.Transforms))
		for k, v := range s.Transforms {
			out.Transforms[k] = v
		}
	}
	if s.Cameras != nil {
		out.Cameras = make(map[string]Camera, len(s.Cameras))
		for k, v := range s.Cameras {
			out.Cameras[k] = v
		}
	}
	if s.ROIs != nil {
		out.ROIs = make(map[string]ROI, len(s.ROIs))
		for k, v := range s.ROIs {
			out.ROIs[k] = v
		}
	}
	if s.VolumeProperties != nil {
		out.VolumeProperties = make(map[string]VolumeProperty, len(s.VolumeProperties))
		for k, v := range s.VolumeProperties {
			out.VolumeProperties[k] = v.Clone()
		}
	}
	return out
}

// Select copies only the referenced states. Unknown refs are skipped.
func (s Scene) Select(refs []Ref) Scene {
	out := Scene{}
	for _, ref := range refs {
		switch ref.Kind {
		case KindTransform:
			if v, ok := s.Transforms[ref.ID]; ok {
				if out.Transforms == nil {
					out.Transforms = make(map[string]Matrix4)
				}
				out.Transforms[ref.ID] = v
			}
		case KindCamera:
			if v, ok := s.Cameras[ref.ID]; ok {
				if out.Cameras == nil {
					out.Cameras = make(map[string]Camera)
				}
				out.Cameras[ref.ID] = v
			}
		case KindROI:
			if v, ok := s.ROIs[ref.ID]; ok {
				if out.ROIs == nil {
					out.ROIs = make(map[string]ROI)
				}
				out.ROIs[ref.ID] = v
			}
		case KindVolumeProperty:
			if v, ok := s.VolumeProperties[ref.ID]; ok {
				if out.VolumeProperties == nil {
					out.VolumeProperties = make(map[string]VolumeProperty)
				}
				out.VolumeProperties[ref.ID] = v.Clone()
			}
		}
	}
	return out
}

// WriteScene writes a scene to a YAML file
func WriteScene(scene Scene, path string) error {
	data, err := yaml.Marshal(scene)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadScene reads a scene from a YAML file
func ReadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, err
	}

	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("decode scene %s: %w", path, err)
	}
	return scene, nil
}
