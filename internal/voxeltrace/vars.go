package voxeltrace

var (
	Debug = false // set to true for verbose debug output (ray stats, BVH dump, coverage)
	RAW   = false // set to true to dump the linear framebuffer of every frame
)
