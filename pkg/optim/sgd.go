// Package optim holds first-order optimizers for the iterative solvers.
package optim

// SGD applies plain stochastic gradient descent steps with a fixed learning
// rate.
type SGD struct{ LearningRate float64 }

func NewSGD(lr float64) *SGD { return &SGD{LearningRate: lr} }

// Step updates weights in place against the given gradients.
func (o *SGD) Step(weights, grads []float64) {
	for i := range weights {
		weights[i] -= o.LearningRate * grads[i]
	}
}
