package voxeltrace

// Defaults used when the config leaves a field empty.
const (
	DefaultWidth        = 960
	DefaultHeight       = 540
	DefaultSpp          = 16
	DefaultTileSize     = 32
	DefaultFPS          = 30
	DefaultSeconds      = 10
	DefaultDayTimeScale = 12
	DefaultOutDir       = "frames"
	DefaultFormat       = "bmp"
	DefaultGIFDelay     = 3 // 100ths of a second per frame
	DefaultGIFScale     = 0.25
	DefaultDayCycle     = 140
	DefaultAssetsDir    = "assets"
)

const (
	AABBBVHMaxLeafSize  = 2
	AABBBVHFromNObjects = 8 // minimum number of voxels to bother building a BVH
	CoverageProbeRays   = 4096
)

// hot-loop constants of the shading kernel
const (
	rayTMin        = 1e-4
	rayTMax        = 1e9
	parallelEps    = 1e-12
	bigRecip       = 1e30
	surfaceEps     = 1e-4
	shadowMaxT     = 1e6
	sunMinInt      = 0.01
	sunMinY        = 0.1
	sunSpread      = 0.008
	specMinInt     = 0.3
	specPower      = 32.0
	specK          = 0.06
	aoEps          = 1e-3
	aoRange        = 0.6
	aoStrength     = 0.55
	aoFloor        = 0.5
	lightIntensity = 2.0
	lightMaxRange  = 10.0
	lightScale     = 0.8
	minLightK      = 0.3
	uvAnimSpeed    = 0.2
	skyDiskAngle   = 0.008
	skyDiskGain    = 80.0
	skyGlowAngle   = 0.10
	skyGlowGain    = 1.5
	gammaInv       = 1 / 2.2
)

// sunJitter is the soft-shadow pattern: offsets in the sun's tangent plane, scaled by sunSpread.
var sunJitter = [4][2]Real{
	{0.0, 0.0},
	{0.6, 0.0},
	{0.0, 0.6},
	{-0.6, -0.3},
}

// aoJitter tilts the AO probes off the normal inside its tangent plane.
var aoJitter = [5][2]Real{
	{0, 0},
	{0.5, 0},
	{-0.5, 0},
	{0, 0.5},
	{0, -0.5},
}

var groundColor = Color{0.08, 0.07, 0.06}
