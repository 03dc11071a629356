package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/api"
	"github.com/dmitrijs2005/todoapi/internal/common"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn

	mu    sync.RWMutex
	token string
}

// NewGRPCClient prepares a lazy connection to endpointURL. Extra dial
// options are appended to the defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *GRPCClient) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *GRPCClient) LoggedIn() bool {
	return c.currentToken() != ""
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := c.currentToken(); token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, common.AuthorizationHeaderName, common.AuthorizationValue(token))
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if status.Code(err) == codes.Unauthenticated && method != api.FullMethod(api.MethodLogin) {
		// the session is gone server side
		c.setToken("")
	}
	return err
}

func (c *GRPCClient) invoke(ctx context.Context, method string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.conn.Invoke(ctx, api.FullMethod(method), in, out); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *GRPCClient) Login(ctx context.Context, email, password string) (*api.UserProfile, error) {
	var resp api.LoginResponse
	if err := c.invoke(ctx, api.MethodLogin, &api.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp.User, nil
}

// Logout revokes the session. The local token is dropped even when the
// server call fails.
func (c *GRPCClient) Logout(ctx context.Context) error {
	defer c.setToken("")
	return c.invoke(ctx, api.MethodLogout, &api.Empty{}, &api.Empty{})
}

func (c *GRPCClient) Me(ctx context.Context) (*api.UserProfile, error) {
	var out api.UserProfile
	if err := c.invoke(ctx, api.MethodMe, &api.Empty{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GRPCClient) ListTasks(ctx context.Context) ([]api.Task, error) {
	var out api.TaskList
	if err := c.invoke(ctx, api.MethodListTasks, &api.Empty{}, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *GRPCClient) GetTask(ctx context.Context, id int64) (*api.Task, error) {
	var out api.Task
	if err := c.invoke(ctx, api.MethodGetTask, &api.TaskIDRequest{ID: id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GRPCClient) CreateTask(ctx context.Context, title string, description *string) (*api.Task, error) {
	var out api.Task
	if err := c.invoke(ctx, api.MethodCreateTask, &api.CreateTaskRequest{Title: title, Description: description}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GRPCClient) UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.Task, error) {
	var out api.Task
	if err := c.invoke(ctx, api.MethodUpdateTask, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GRPCClient) DeleteTask(ctx context.Context, id int64) error {
	return c.invoke(ctx, api.MethodDeleteTask, &api.TaskIDRequest{ID: id}, &api.Empty{})
}

func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.Unauthenticated:
		if st.Message() == ErrInvalidCredentials.Error() {
			return ErrInvalidCredentials
		}
		return ErrUnauthorized
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrConflict
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	default:
		return errors.New(st.Message())
	}
}
