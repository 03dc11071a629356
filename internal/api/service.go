package api

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "todoapi.v1.TodoService"

// Method names of ServiceName.
const (
	MethodLogin      = "Login"
	MethodLogout     = "Logout"
	MethodMe         = "Me"
	MethodListTasks  = "ListTasks"
	MethodGetTask    = "GetTask"
	MethodCreateTask = "CreateTask"
	MethodUpdateTask = "UpdateTask"
	MethodDeleteTask = "DeleteTask"
)

// FullMethod returns the "/service/method" path used on the wire.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}
