package catalog

import "fmt"

// These path builders return URIs relative to the controller's base
// (https://host:port). None of them differ between protocol versions —
// only the subscription body encoding, content type and WebSocket
// subprotocol do, and those live in the subscribe/v1 and subscribe/v2
// packages per the "share every version-independent path" design note.

func ControllerStateURI() string { return "/rw/panel/ctrlstate" }

func SetControllerStateURI() string { return "/rw/panel/ctrlstate?action=setctrlstate" }

func OperationModeURI() string { return "/rw/panel/opmode" }

func SpeedRatioURI() string { return "/rw/panel/speedratio" }

func SetSpeedRatioURI() string { return "/rw/panel/speedratio?action=setspeedratio" }

func IOSignalsURI() string { return "/rw/iosystem/signals" }

func IOSignalURI(name string) string {
	return fmt.Sprintf("/rw/iosystem/signals/%s", name)
}

func SetIOSignalURI(name string) string {
	return fmt.Sprintf("/rw/iosystem/signals/%s?action=set", name)
}

func MechanicalUnitURI(mechunit string) string {
	return fmt.Sprintf("/rw/motionsystem/mechunits/%s", mechunit)
}

func MechanicalUnitJointTargetURI(mechunit string) string {
	return MechanicalUnitURI(mechunit) + "/jointtarget"
}

func MechanicalUnitRobTargetURI(mechunit string, coord Coordinate, tool, wobj string) string {
	uri := MechanicalUnitURI(mechunit) + fmt.Sprintf("/robtarget?coordinate=%s", coord)
	if tool != "" {
		uri += "&tool=" + tool
	}
	if wobj != "" {
		uri += "&wobj=" + wobj
	}
	return uri
}

func FileURI(directory, filename string) string {
	return fmt.Sprintf("/fileservice/%s/%s", directory, filename)
}

func UsersRegisterURI() string { return "/users?action=register" }

func SubscriptionURI() string { return "/subscription" }

func SubscriptionGroupURI(groupID string) string {
	return fmt.Sprintf("/subscription/%s", groupID)
}

func PollURI(groupID string) string {
	return fmt.Sprintf("/poll/%s", groupID)
}

// Supplemented read-only query surface (abb_librws v2_0/rws_client.h),
// not named by the distilled spec but not excluded by any Non-goal.

func ControllerServiceURI() string { return "/rw/system" }

func RobotWareSystemURI() string { return "/rw/system/robotware" }

func ConfigurationInstancesURI(topic CFGDomain, cfgType string) string {
	return fmt.Sprintf("/rw/cfg/%s/%s/instances", topic, cfgType)
}

func MechanicalUnitStaticInfoURI(mechunit string) string {
	return MechanicalUnitURI(mechunit) + "/staticinfo"
}

func MechanicalUnitDynamicInfoURI(mechunit string) string {
	return MechanicalUnitURI(mechunit)
}

func RAPIDTasksURI() string { return "/rw/rapid/tasks" }

func RAPIDTaskURI(task string) string {
	return fmt.Sprintf("/rw/rapid/tasks/%s", task)
}

func RAPIDExecutionURI() string { return "/rw/rapid/execution" }

func RAPIDModulesURI(task string) string {
	return fmt.Sprintf("/rw/rapid/tasks/%s/modules", task)
}

func RAPIDPcpURI(task string) string {
	return fmt.Sprintf("/rw/rapid/tasks/%s/pcp", task)
}

func RAPIDSymbolDataURI(task, module, name string) string {
	return fmt.Sprintf("/rw/rapid/symbol/data/RAPID/%s/%s/%s", task, module, name)
}
