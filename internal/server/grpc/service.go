package grpc

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/api"
	"google.golang.org/grpc"
)

// TodoServiceServer is the server API of todoapi.v1.TodoService. Messages
// are the JSON types of package api.
type TodoServiceServer interface {
	Login(context.Context, *api.LoginRequest) (*api.LoginResponse, error)
	Logout(context.Context, *api.Empty) (*api.Empty, error)
	Me(context.Context, *api.Empty) (*api.UserProfile, error)
	ListTasks(context.Context, *api.Empty) (*api.TaskList, error)
	GetTask(context.Context, *api.TaskIDRequest) (*api.Task, error)
	CreateTask(context.Context, *api.CreateTaskRequest) (*api.Task, error)
	UpdateTask(context.Context, *api.UpdateTaskRequest) (*api.Task, error)
	DeleteTask(context.Context, *api.TaskIDRequest) (*api.Empty, error)
}

func unary[Req, Resp any](name string, call func(TodoServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TodoServiceServer), ctx, req.(*Req))
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: api.FullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// TodoServiceDesc describes todoapi.v1.TodoService for grpc.Server.RegisterService.
var TodoServiceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*TodoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(api.MethodLogin, TodoServiceServer.Login),
		unary(api.MethodLogout, TodoServiceServer.Logout),
		unary(api.MethodMe, TodoServiceServer.Me),
		unary(api.MethodListTasks, TodoServiceServer.ListTasks),
		unary(api.MethodGetTask, TodoServiceServer.GetTask),
		unary(api.MethodCreateTask, TodoServiceServer.CreateTask),
		unary(api.MethodUpdateTask, TodoServiceServer.UpdateTask),
		unary(api.MethodDeleteTask, TodoServiceServer.DeleteTask),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "todoapi/v1/todo.json",
}
