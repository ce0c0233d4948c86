package state

import (
	"errors"
	"fmt"
)

// ErrUnresolvedReference reports an id that the store does not know.
var ErrUnresolvedReference = errors.New("unresolved reference")

// Kind names the shape of a stored state.
type Kind string

const (
	KindTransform      Kind = "transform"
	KindCamera         Kind = "camera"
	KindROI            Kind = "roi"
	KindVolumeProperty Kind = "volumeProperty"
)

// Ref addresses one state in a store.
type Ref struct {
	Kind Kind
	ID   string
}

// Store resolves ids to mutable states. Getters return copies and setters
// fail with ErrUnresolvedReference for ids that were never created.
type Store interface {
	Transform(id string) (Matrix4, error)
	SetTransform(id string, m Matrix4) error
	Camera(id string) (Camera, error)
	SetCamera(id string, c Camera) error
	ROI(id string) (ROI, error)
	SetROI(id string, r ROI) error
	VolumeProperty(id string) (VolumeProperty, error)
	SetVolumeProperty(id string, v VolumeProperty) error
}

// Memory is an in-process Store backed by a Scene. It is not safe for
// concurrent mutation; clone it per goroutine.
type Memory struct {
	scene Scene
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return NewMemoryFromScene(Scene{})
}

// NewMemoryFromScene creates a store holding a deep copy of sc.
func NewMemoryFromScene(sc Scene) *Memory {
	return &Memory{scene: sc.Clone()}
}

// Clone returns an independent copy of the store.
func (m *Memory) Clone() *Memory {
	return NewMemoryFromScene(m.scene)
}

// Scene returns a deep copy of the stored states.
func (m *Memory) Scene() Scene {
	return m.scene.Clone()
}

func unresolved(kind Kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrUnresolvedReference, kind, id)
}

func (m *Memory) Transform(id string) (Matrix4, error) {
	v, ok := m.scene.Transforms[id]
	if !ok {
		return Matrix4{}, unresolved(KindTransform, id)
	}
	return v, nil
}

func (m *Memory) SetTransform(id string, v Matrix4) error {
	if _, ok := m.scene.Transforms[id]; !ok {
		return unresolved(KindTransform, id)
	}
	m.scene.Transforms[id] = v
	return nil
}

// PutTransform creates or replaces a transform.
func (m *Memory) PutTransform(id string, v Matrix4) {
	if m.scene.Transforms == nil {
		m.scene.Transforms = make(map[string]Matrix4)
	}
	m.scene.Transforms[id] = v
}

func (m *Memory) Camera(id string) (Camera, error) {
	v, ok := m.scene.Cameras[id]
	if !ok {
		return Camera{}, unresolved(KindCamera, id)
	}
	return v, nil
}

func (m *Memory) SetCamera(id string, v Camera) error {
	if _, ok := m.scene.Cameras[id]; !ok {
		return unresolved(KindCamera, id)
	}
	m.scene.Cameras[id] = v
	return nil
}

// PutCamera creates or replaces a camera.
func (m *Memory) PutCamera(id string, v Camera) {
	if m.scene.Cameras == nil {
		m.scene.Cameras = make(map[string]Camera)
	}
	m.scene.Cameras[id] = v
}

func (m *Memory) ROI(id string) (ROI, error) {
	v, ok := m.scene.ROIs[id]
	if !ok {
		return ROI{}, unresolved(KindROI, id)
	}
	return v, nil
}

func (m *Memory) SetROI(id string, v ROI) error {
	if _, ok := m.scene.ROIs[id]; !ok {
		return unresolved(KindROI, id)
	}
	m.scene.ROIs[id] = v
	return nil
}

// PutROI creates or replaces an ROI.
func (m *Memory) PutROI(id string, v ROI) {
	if m.scene.ROIs == nil {
		m.scene.ROIs = make(map[string]ROI)
	}
	m.scene.ROIs[id] = v
}

func (m *Memory) VolumeProperty(id string) (VolumeProperty, error) {
	v, ok := m.scene.VolumeProperties[id]
	if !ok {
		return VolumeProperty{}, unresolved(KindVolumeProperty, id)
	}
	return v.Clone(), nil
}

func (m *Memory) SetVolumeProperty(id string, v VolumeProperty) error {
	if _, ok := m.scene.VolumeProperties[id]; !ok {
		return unresolved(KindVolumeProperty, id)
	}
	m.scene.VolumeProperties[id] = v.Clone()
	return nil
}

// PutVolumeProperty creates or replaces a volume property.
func (m *Memory) PutVolumeProperty(id string, v VolumeProperty) {
	if m.scene.VolumeProperties == nil {
		m.scene.VolumeProperties = make(map[string]VolumeProperty)
	}
	m.scene.VolumeProperties[id] = v.Clone()
}
