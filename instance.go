package vkg

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// Version is used to specify versions of components
type Version struct {
	Major int
	Minor int
	Patch int
}

// VKVersion returns a Vulkan compatible version representation
func (v Version) VKVersion() uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// App is used to provide information about this specific application to Vulkan
type App struct {
	// Name the name of the application
	Name string
	// EngineName the name of the engine associated with the application
	EngineName string
	// Version the version of the application
	Version Version
	// APIVersion the expected minimum version of the Vulkan API, at least 1.0.0
	APIVersion Version

	EnabledLayers     []string
	EnabledExtensions []string
}

// SupportedLayers returns the instance layers known to the loader. Vulkan
// must have been initialized beforehand.
func SupportedLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, props)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, layer := range props {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// SupportedExtensions returns the instance extensions known to the loader.
// Vulkan must have been initialized beforehand.
func SupportedExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, ext := range props {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// EnableDebugging enables the Khronos validation layer and the debug report
// extension. See https://vulkan.lunarg.com/doc/sdk/latest/windows/khronos_validation_layer.html
func (a *App) EnableDebugging() error {
	if err := a.EnableLayer("VK_LAYER_KHRONOS_validation"); err != nil {
		return err
	}
	a.EnableExtension("VK_EXT_debug_report")
	return nil
}

// EnableLayer enables a layer if the loader supports it.
func (a *App) EnableLayer(layer string) error {
	layers, err := SupportedLayers()
	if err != nil {
		return fmt.Errorf("error getting supported layers: %w", err)
	}
	if !slices.Contains(layers, layer) {
		return fmt.Errorf("validation layer '%s' not found", layer)
	}
	if !slices.Contains(a.EnabledLayers, layer) {
		a.EnabledLayers = append(a.EnabledLayers, layer)
	}
	return nil
}

// EnableExtension enables an instance extension.
func (a *App) EnableExtension(extension string) *App {
	if !slices.Contains(a.EnabledExtensions, extension) {
		a.EnabledExtensions = append(a.EnabledExtensions, extension)
	}
	return a
}

// VKApplicationInfo creates a structure representing this application in a Vulkan friendly format
func (a *App) VKApplicationInfo() vk.ApplicationInfo {
	if a.APIVersion.Major < 1 {
		a.APIVersion.Major = 1
	}
	return vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         a.APIVersion.VKVersion(),
		ApplicationVersion: a.Version.VKVersion(),
		PApplicationName:   safeString(a.Name),
		PEngineName:        safeString(a.EngineName),
	}
}

// CreateInstance creates the Vulkan instance
func (a *App) CreateInstance() (*Instance, error) {
	appInfo := a.VKApplicationInfo()

	extensions := safeStrings(a.EnabledExtensions)
	layers := safeStrings(a.EnabledLayers)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	instance := &Instance{}
	if err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance.VKInstance)); err != nil {
		return nil, fmt.Errorf("unable to create instance: %w", err)
	}
	if err := vk.InitInstance(instance.VKInstance); err != nil {
		vk.DestroyInstance(instance.VKInstance, nil)
		return nil, fmt.Errorf("unable to load instance functions: %w", err)
	}

	Logger().Info("vulkan instance created",
		"app", a.Name,
		"version", a.Version.String(),
		"layers", a.EnabledLayers,
		"extensions", a.EnabledExtensions)
	return instance, nil
}

// Instance is an instance of the Vulkan subsystem
type Instance struct {
	// VKInstance is the native Vulkan instance object
	VKInstance vk.Instance

	debugCallback    vk.DebugReportCallback
	hasDebugCallback bool
}

// PhysicalDevices returns a list of physical devices known to Vulkan
func (i *Instance) PhysicalDevices() ([]*PhysicalDevice, error) {
	var count uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	devices := make([]vk.PhysicalDevice, count)
	if err := vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &count, devices)); err != nil {
		return nil, err
	}

	ret := make([]*PhysicalDevice, count)
	for j, device := range devices {
		p := &PhysicalDevice{VKPhysicalDevice: device}
		vk.GetPhysicalDeviceProperties(device, &p.VKPhysicalDeviceProperties)
		p.VKPhysicalDeviceProperties.Deref()
		p.DeviceName = vk.ToString(p.VKPhysicalDeviceProperties.DeviceName[:])
		ret[j] = p
	}
	return ret, nil
}

// UseDefaultDebugCallback routes validation messages to Logger.
func (i *Instance) UseDefaultDebugCallback() error {
	return i.SetDebugCallback(DefaultDebugCallback)
}

// SetDebugCallback installs callback for errors and warnings of the
// debug report extension, replacing any earlier one.
func (i *Instance) SetDebugCallback(callback vk.DebugReportCallbackFunc) error {
	i.destroyDebugCallback()

	var debugCallback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(i.VKInstance, &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit),
		PfnCallback: callback,
	}, nil, &debugCallback)
	if err := vk.Error(ret); err != nil {
		return fmt.Errorf("unable to install debug callback: %w", err)
	}
	i.debugCallback = debugCallback
	i.hasDebugCallback = true
	return nil
}

func (i *Instance) destroyDebugCallback() {
	if i.hasDebugCallback {
		vk.DestroyDebugReportCallback(i.VKInstance, i.debugCallback, nil)
		i.hasDebugCallback = false
	}
}

// DefaultDebugCallback logs a debug report message at the level matching
// its flags.
func DefaultDebugCallback(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	Logger().Log(context.Background(), debugReportLevel(flags), pMessage,
		"layer", pLayerPrefix,
		"code", messageCode,
		"object", object)
	return vk.False
}

func debugReportLevel(flags vk.DebugReportFlags) slog.Level {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return slog.LevelError
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit|vk.DebugReportPerformanceWarningBit) != 0:
		return slog.LevelWarn
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Destroy destroys the instance along with its debug callback.
func (i *Instance) Destroy() {
	i.destroyDebugCallback()
	vk.DestroyInstance(i.VKInstance, nil)
}
