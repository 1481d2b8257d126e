// Command libsocprobe builds the probe as a C shared library:
//
//	go build -buildmode=c-shared -o libsocprobe.so ./cmd/libsocprobe
//
// Every function is synchronous and needs no handle. Strings returned
// to the caller are heap copies and must be released with socprobe_free.
package main

/*
#include <stdbool.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

//export socprobe_init
func socprobe_init(root *C.char) C.int {
	svc, err := newService(C.GoString(root))
	if err != nil {
		return -1
	}
	install(svc)
	return 0
}

//export socprobe_cpu_load
func socprobe_cpu_load() C.float {
	return C.float(cpuLoad())
}

//export socprobe_cpu_temperature
func socprobe_cpu_temperature() C.float {
	return C.float(cpuTemperature())
}

//export socprobe_cpu_clusters
func socprobe_cpu_clusters() *C.char {
	return C.CString(clustersJSON())
}

//export socprobe_gpu_busy
func socprobe_gpu_busy() C.float {
	return C.float(gpuBusy())
}

//export socprobe_battery_current
func socprobe_battery_current() C.int {
	return C.int(batteryCurrent())
}

//export socprobe_battery_level
func socprobe_battery_level() C.int {
	return C.int(batteryLevel())
}

//export socprobe_is_charging
func socprobe_is_charging() C.bool {
	return C.bool(charging())
}

//export socprobe_snapshot
func socprobe_snapshot() *C.char {
	return C.CString(snapshotJSON())
}

//export socprobe_family
func socprobe_family(name *C.char) *C.char {
	return C.CString(familyJSON(C.GoString(name)))
}

//export socprobe_prop
func socprobe_prop(key *C.char) *C.char {
	return C.CString(prop(C.GoString(key)))
}

//export socprobe_reset
func socprobe_reset() {
	reset()
}

//export socprobe_free
func socprobe_free(p *C.char) {
	C.free(unsafe.Pointer(p))
}

func main() {}
